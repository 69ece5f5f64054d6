package lineage_test

import (
	"testing"

	lineage "github.com/okian/sireline/internal/domain/lineage"
	model "github.com/okian/sireline/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolveDiscipline(t *testing.T) {
	Convey("Given an analyzer", t, func() {
		analyzer := lineage.NewAnalyzer()

		Convey("When the ancestor has a direct discipline tag", func() {
			a := model.Ancestor{
				ID:         "anc-1",
				Discipline: "Racing",
				DisciplineScores: []model.DisciplineScore{
					{Discipline: "Dressage", Score: 99},
				},
				CompetitionHistory: []model.CompetitionRecord{
					{Discipline: "Eventing", Placement: 1},
				},
			}

			Convey("Then the tag should win over every other source", func() {
				So(analyzer.ResolveDiscipline(a), ShouldEqual, "Racing")
			})
		})

		Convey("When the ancestor only has discipline scores", func() {
			a := model.Ancestor{
				ID: "anc-2",
				DisciplineScores: []model.DisciplineScore{
					{Discipline: "Dressage", Score: 55},
					{Discipline: "Racing", Score: 80},
					{Discipline: "Eventing", Score: 62},
				},
			}

			Convey("Then the highest score should win", func() {
				So(analyzer.ResolveDiscipline(a), ShouldEqual, "Racing")
			})
		})

		Convey("When two scores tie for the maximum", func() {
			a := model.Ancestor{
				ID: "anc-3",
				DisciplineScores: []model.DisciplineScore{
					{Discipline: "Dressage", Score: 70},
					{Discipline: "Racing", Score: 70},
				},
			}

			Convey("Then the first listed should win", func() {
				So(analyzer.ResolveDiscipline(a), ShouldEqual, "Dressage")
			})
		})

		Convey("When the ancestor only has competition history", func() {
			a := model.Ancestor{
				ID: "anc-4",
				CompetitionHistory: []model.CompetitionRecord{
					{Discipline: "Eventing", Placement: 2},
					{Discipline: "Racing", Placement: 1},
					{Discipline: "Racing", Placement: 4},
				},
			}

			Convey("Then the most frequent discipline should win", func() {
				So(analyzer.ResolveDiscipline(a), ShouldEqual, "Racing")
			})
		})

		Convey("When competition frequencies tie", func() {
			a := model.Ancestor{
				ID: "anc-5",
				CompetitionHistory: []model.CompetitionRecord{
					{Discipline: "Eventing", Placement: 2},
					{Discipline: "Racing", Placement: 1},
					{Discipline: "Racing", Placement: 3},
					{Discipline: "Eventing", Placement: 1},
				},
			}

			Convey("Then the first to reach the maximum should win", func() {
				So(analyzer.ResolveDiscipline(a), ShouldEqual, "Eventing")
			})
		})

		Convey("When competition entries carry empty disciplines", func() {
			a := model.Ancestor{
				ID: "anc-6",
				CompetitionHistory: []model.CompetitionRecord{
					{Discipline: "", Placement: 1},
					{Discipline: "Dressage", Placement: 5},
				},
			}

			Convey("Then empty entries should be ignored", func() {
				So(analyzer.ResolveDiscipline(a), ShouldEqual, "Dressage")
			})
		})

		Convey("When the ancestor carries no discipline source at all", func() {
			a := model.Ancestor{ID: "anc-7", Name: "Blank Slate"}

			Convey("Then resolution should yield nothing", func() {
				So(analyzer.ResolveDiscipline(a), ShouldEqual, "")
			})
		})
	})
}
