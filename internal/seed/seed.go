// Package seed loads the A-license progression curriculum and the badge
// catalog. Seeding is idempotent: rows already present by code are left
// alone, so it runs on every boot.
package seed

import (
	"context"
	"errors"
	"log/slog"

	"skymentor/internal/model"
	"skymentor/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stepSeed struct {
	code         string
	title        string
	description  string
	category     model.Category
	minJumpsGate int
}

// The 24-step curriculum: 2 two-way, 6 three-way, 10 four-way, 3 canopy
// and 3 safety steps, each gated on a minimum jump count.
var progressionSteps = []stepSeed{
	{"2W-01", "Basic 2-Way Exit", "Learn synchronized exits with partner for stable relative work", model.Category2Way, 26},
	{"2W-02", "2-Way Sequential", "Complete 2-point sequential moves with partner", model.Category2Way, 30},

	{"3W-01", "Star Exit", "Master 3-way star exit from aircraft", model.Category3Way, 35},
	{"3W-02", "Sidebody Donut", "Build and hold sidebody donut formation", model.Category3Way, 40},
	{"3W-03", "Open Accordion", "Transition through open accordion formation", model.Category3Way, 45},
	{"3W-04", "Cat to Bipole", "Execute cat to bipole transition smoothly", model.Category3Way, 50},
	{"3W-05", "3-Way Sequential", "Complete 3-point sequential with 2 partners", model.Category3Way, 55},
	{"3W-06", "3-Way Random", "Complete random 3-way formations from draw", model.Category3Way, 60},

	{"4W-01", "Star to Diamond", "Transition from star to diamond formation", model.Category4Way, 65},
	{"4W-02", "Meeker Exit", "Execute proper 4-way meeker exit", model.Category4Way, 68},
	{"4W-03", "Compressed Accordion", "Build compressed accordion with 3 partners", model.Category4Way, 71},
	{"4W-04", "Bipole to Donut", "Smooth transition from bipole to donut", model.Category4Way, 74},
	{"4W-05", "Sidebody Box", "Form and maintain sidebody box formation", model.Category4Way, 77},
	{"4W-06", "Murphy Flake", "Complete murphy flake with proper grips", model.Category4Way, 80},
	{"4W-07", "4-Way Sequential", "Execute 4-point sequential moves", model.Category4Way, 83},
	{"4W-08", "Zipper to Bow", "Transition from zipper to bow formation", model.Category4Way, 86},
	{"4W-09", "Block Sequence", "Complete 2-block sequence with team", model.Category4Way, 90},
	{"4W-10", "4-Way Competition", "Perform competition-level 4-way sequences", model.Category4Way, 95},

	{"CAN-01", "Accuracy Landing", "Land within 5 meters of target consistently", model.CategoryCanopy, 30},
	{"CAN-02", "Traffic Pattern", "Navigate busy pattern with proper spacing", model.CategoryCanopy, 40},
	{"CAN-03", "Emergency Procedures", "Demonstrate malfunction response procedures", model.CategoryCanopy, 50},

	{"SAF-01", "Altitude Awareness", "Demonstrate proper altitude discipline", model.CategorySafety, 26},
	{"SAF-02", "Collision Avoidance", "Show effective air traffic awareness", model.CategorySafety, 35},
	{"SAF-03", "Emergency Response", "Execute emergency action plan correctly", model.CategorySafety, 45},
}

type badgeSeed struct {
	code        string
	name        string
	description string
	criteria    *model.BadgeCriteria
}

// Badges without criteria (time-window and feedback-based ones) are
// never auto-awarded; they stay in the catalog for manual grants.
var badges = []badgeSeed{
	{"FIRST_2WAY", "First 2-Way", "Complete your first 2-way formation", &model.BadgeCriteria{Category: model.Category2Way, Count: 1}},
	{"FIRST_3WAY", "First 3-Way", "Complete your first 3-way formation", &model.BadgeCriteria{Category: model.Category3Way, Count: 1}},
	{"FIRST_4WAY", "First 4-Way", "Complete your first 4-way formation", &model.BadgeCriteria{Category: model.Category4Way, Count: 1}},
	{"FORMATION_MASTER", "Formation Master", "Complete all formation progression steps", &model.BadgeCriteria{Category: model.Category4Way, Count: 10}},
	{"CANOPY_PILOT", "Canopy Pilot", "Master all canopy control skills", &model.BadgeCriteria{Category: model.CategoryCanopy, Count: 3}},
	{"SAFETY_CONSCIOUS", "Safety Conscious", "Complete all safety training", &model.BadgeCriteria{Category: model.CategorySafety, Count: 3}},
	{"A_LICENSE_READY", "A-License Ready", "Complete entire A-license curriculum", &model.BadgeCriteria{TotalCount: 24}},
	{"QUICK_LEARNER", "Quick Learner", "Complete 5 steps in one week", nil},
	{"DEDICATED_STUDENT", "Dedicated Student", "Complete 20 jumps in training", &model.BadgeCriteria{TotalCount: 20}},
	{"MENTOR_FAVORITE", "Mentor's Favorite", "Receive positive feedback from 3 different mentors", nil},
}

// Run seeds both catalogs, skipping rows whose code already exists.
func Run(ctx context.Context, db *gorm.DB, progressionRepo repository.ProgressionRepository, badgeRepo repository.BadgeRepository, logger *slog.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var createdSteps, createdBadges int

		for _, s := range progressionSteps {
			_, err := progressionRepo.FindStepByCode(ctx, tx, s.code)
			if err == nil {
				continue
			}
			if !errors.Is(err, model.ErrNotFound) {
				return err
			}
			step := &model.ProgressionStep{
				ID:           uuid.New(),
				Code:         s.code,
				Title:        s.title,
				Description:  s.description,
				Category:     s.category,
				Required:     true,
				MinJumpsGate: s.minJumpsGate,
			}
			if err := progressionRepo.CreateStep(ctx, tx, step); err != nil {
				return err
			}
			createdSteps++
		}

		for _, b := range badges {
			_, err := badgeRepo.FindBadgeByCode(ctx, tx, b.code)
			if err == nil {
				continue
			}
			if !errors.Is(err, model.ErrNotFound) {
				return err
			}
			badge := &model.Badge{
				ID:          uuid.New(),
				Code:        b.code,
				Name:        b.name,
				Description: b.description,
				Criteria:    b.criteria,
			}
			if err := badgeRepo.CreateBadge(ctx, tx, badge); err != nil {
				return err
			}
			createdBadges++
		}

		if createdSteps > 0 || createdBadges > 0 {
			logger.Info("Seeded catalogs", "progression_steps", createdSteps, "badges", createdBadges)
		}
		return nil
	})
}
