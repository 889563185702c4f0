package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tournament-tools/prize-allocator/pkg/core/model"
)

func names(players []*model.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}

func TestSortCandidates_RankAscendingPrimary(t *testing.T) {
	players := []*model.Player{
		{Name: "Chirag", Rank: 3},
		{Name: "Amit", Rank: 1},
		{Name: "Bala", Rank: 2},
	}
	SortCandidates(players, &model.Category{ID: "c"}, model.DefaultRules())
	assert.Equal(t, []string{"Amit", "Bala", "Chirag"}, names(players))
}

func TestSortCandidates_RatingThenNameOnRankTie(t *testing.T) {
	// Ratings equal at 2100 for Bala and Amit: name breaks Amit < Bala;
	// Chirag drops last on rating.
	players := []*model.Player{
		{Name: "Bala", Rank: 1, Rating: 2100},
		{Name: "Amit", Rank: 1, Rating: 2100},
		{Name: "Chirag", Rank: 1, Rating: 1900},
	}
	rules := model.DefaultRules()
	rules.TieBreakFields = []model.TieBreakField{model.TieBreakRating, model.TieBreakName}

	SortCandidates(players, &model.Category{ID: "c"}, rules)
	assert.Equal(t, []string{"Amit", "Bala", "Chirag"}, names(players))
}

func TestSortCandidates_NoneStrategyKeepsEncounteredOrder(t *testing.T) {
	players := []*model.Player{
		{Name: "Bala", Rank: 1, Rating: 1900},
		{Name: "Amit", Rank: 1, Rating: 2100},
	}
	rules := model.DefaultRules()
	rules.TieBreakFields = []model.TieBreakField{}

	SortCandidates(players, &model.Category{ID: "c"}, rules)
	assert.Equal(t, []string{"Bala", "Amit"}, names(players))
}

func TestSortCandidates_NameOnlyStrategy(t *testing.T) {
	players := []*model.Player{
		{Name: "Bala", Rank: 1, Rating: 2500},
		{Name: "Amit", Rank: 1, Rating: 1000},
	}
	rules := model.DefaultRules()
	rules.TieBreakFields = []model.TieBreakField{model.TieBreakName}

	SortCandidates(players, &model.Category{ID: "c"}, rules)
	assert.Equal(t, []string{"Amit", "Bala"}, names(players))
}

func TestSortCandidates_YoungestMostRecentDOBFirst(t *testing.T) {
	players := []*model.Player{
		{Name: "Older", Rank: 1, DOB: date(2014, time.March, 1)},
		{Name: "Younger", Rank: 5, DOB: date(2017, time.August, 20)},
		{Name: "Middle", Rank: 2, DOB: date(2015, time.January, 5)},
	}
	category := &model.Category{ID: "yg", Type: model.CategoryYoungestGirl}

	SortCandidates(players, category, model.DefaultRules())
	assert.Equal(t, []string{"Younger", "Middle", "Older"}, names(players))
}

func TestSortCandidates_YoungestMissingDOBSortsLast(t *testing.T) {
	players := []*model.Player{
		{Name: "NoDOB", Rank: 1},
		{Name: "HasDOB", Rank: 9, DOB: date(2016, time.May, 2)},
	}
	category := &model.Category{ID: "yb", Type: model.CategoryYoungestBoy}

	SortCandidates(players, category, model.DefaultRules())
	assert.Equal(t, []string{"HasDOB", "NoDOB"}, names(players))
}

func TestSortCandidates_YoungestTieFallsToRankRatingName(t *testing.T) {
	sameDOB := date(2016, time.May, 2)
	players := []*model.Player{
		{Name: "B", Rank: 2, Rating: 1500, DOB: sameDOB},
		{Name: "A", Rank: 2, Rating: 1500, DOB: sameDOB},
		{Name: "C", Rank: 1, Rating: 1000, DOB: sameDOB},
	}
	category := &model.Category{ID: "yg", Type: model.CategoryYoungestGirl}

	SortCandidates(players, category, model.DefaultRules())
	assert.Equal(t, []string{"C", "A", "B"}, names(players))
}
