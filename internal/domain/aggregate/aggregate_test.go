package aggregate_test

import (
	"testing"

	aggregate "github.com/okian/smokeoff/internal/domain/aggregate"
	"github.com/okian/smokeoff/internal/domain/model"
	tasting "github.com/okian/smokeoff/internal/domain/tasting"
	"github.com/okian/smokeoff/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func smallRubric() *tasting.Rubric {
	return tasting.NewRubric(
		tasting.WithSamples([]tasting.Sample{
			{ID: "set-a", Label: "Set A"},
			{ID: "set-b", Label: "Set B"},
		}),
		tasting.WithCategories([]tasting.Category{
			{ID: "flavor", Name: "Flavor", Max: 10},
			{ID: "smoke", Name: "Smoke/Char", Max: 10},
		}),
	)
}

func TestComputeMeans(t *testing.T) {
	Convey("Given one judge scoring one sample in one category with 7, 8, 9 across judges", t, func() {
		r := smallRubric()
		scores := []model.Score{
			{JudgeName: "ayla", SampleID: "set-a", CategoryID: "flavor", Value: 7},
			{JudgeName: "dana", SampleID: "set-a", CategoryID: "flavor", Value: 8},
			{JudgeName: "marco", SampleID: "set-a", CategoryID: "flavor", Value: 9},
		}

		results := aggregate.Compute(r, scores)

		Convey("Then the category mean should be 8", func() {
			row := findRow(results, "set-a")
			So(row.Categories["flavor"], ShouldEqual, 8)
			So(row.Overall, ShouldEqual, 8)
			So(row.Judges, ShouldEqual, 3)
		})

		Convey("And the unscored category should contribute a zero mean", func() {
			row := findRow(results, "set-a")
			So(row.Categories["smoke"], ShouldEqual, 0)
			So(row.Total, ShouldEqual, 8)
		})
	})
}

func TestComputeRanking(t *testing.T) {
	Convey("Given two samples with different totals", t, func() {
		r := smallRubric()
		scores := []model.Score{
			{JudgeName: "ayla", SampleID: "set-a", CategoryID: "flavor", Value: 6},
			{JudgeName: "ayla", SampleID: "set-a", CategoryID: "smoke", Value: 6},
			{JudgeName: "ayla", SampleID: "set-b", CategoryID: "flavor", Value: 9},
			{JudgeName: "ayla", SampleID: "set-b", CategoryID: "smoke", Value: 9},
		}

		results := aggregate.Compute(r, scores)

		Convey("Then the higher total should rank first", func() {
			So(results[0].SampleID, ShouldEqual, "set-b")
			So(results[0].Rank, ShouldEqual, 1)
			So(results[0].Total, ShouldEqual, 18)
			So(results[1].SampleID, ShouldEqual, "set-a")
			So(results[1].Rank, ShouldEqual, 2)
		})
	})

	Convey("Given two samples with equal totals", t, func() {
		r := smallRubric()
		scores := []model.Score{
			{JudgeName: "ayla", SampleID: "set-a", CategoryID: "flavor", Value: 7},
			{JudgeName: "ayla", SampleID: "set-b", CategoryID: "flavor", Value: 7},
		}

		results := aggregate.Compute(r, scores)

		Convey("Then ordering should stay deterministic by label", func() {
			So(results[0].SampleID, ShouldEqual, "set-a")
			So(results[1].SampleID, ShouldEqual, "set-b")
		})
	})
}

func TestComputeEmptyAndIdempotent(t *testing.T) {
	Convey("Given no scores", t, func() {
		r := smallRubric()
		results := aggregate.Compute(r, nil)

		Convey("Then every rubric sample should still appear with zero values", func() {
			So(results, ShouldHaveLength, 2)
			for _, row := range results {
				So(row.Total, ShouldEqual, 0)
				So(row.Overall, ShouldEqual, 0)
				So(row.Judges, ShouldEqual, 0)
			}
		})
	})

	Convey("Given an unchanged score set", t, func() {
		r := smallRubric()
		scores := []model.Score{
			{JudgeName: "ayla", SampleID: "set-a", CategoryID: "flavor", Value: 7},
			{JudgeName: "dana", SampleID: "set-b", CategoryID: "smoke", Value: 4},
			{JudgeName: "dana", SampleID: "set-a", CategoryID: "flavor", Value: 10},
		}

		Convey("Then recomputing should yield identical results", func() {
			first := aggregate.Compute(r, scores)
			second := aggregate.Compute(r, scores)
			So(second, ShouldResemble, first)
		})
	})
}

func findRow(results []types.SampleResult, id string) types.SampleResult {
	for _, row := range results {
		if row.SampleID == id {
			return row
		}
	}
	return types.SampleResult{}
}
