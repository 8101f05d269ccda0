package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwhalen/go-docket-metrics/internal/core/model"
)

func TestApplyGrouping(t *testing.T) {
	lookup := map[int]string{
		110: "Contract",
		550: "Prisoner Petitions",
	}
	cases := []model.CaseMeta{
		{CaseID: 1, NatureOfSuit: 550},
		{CaseID: 2, NatureOfSuit: 110},
		{CaseID: 3, NatureOfSuit: 999},
	}

	ApplyGrouping(cases, lookup)

	assert.Equal(t, "Prisoner Petitions", cases[0].Group)
	assert.Equal(t, "Contract", cases[1].Group)
	assert.Equal(t, "", cases[2].Group, "unknown codes stay unlabeled")
}

func TestExcludeHabeas(t *testing.T) {
	cases := []model.CaseMeta{
		{CaseID: 1, Group: "Prisoner Petitions"},
		{CaseID: 2, Group: "Habeas Corpus"},
		{CaseID: 3, Group: ""},
		{CaseID: 4, Group: "Habeas Corpus"},
	}

	kept := ExcludeHabeas(cases)

	ids := make([]int, len(kept))
	for i, c := range kept {
		ids[i] = c.CaseID
	}
	assert.Equal(t, []int{1, 3}, ids, "habeas cases dropped, ungrouped kept")
}
