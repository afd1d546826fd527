// services/achievements.go - Achievement evaluation engine
package services

import (
	"time"

	"ecotrack/models"
)

// PointsPerAchievement is added to a user's score for every unlocked badge.
const PointsPerAchievement = 10

// Achievement pairs a stable id with the predicate that unlocks it. The
// predicate is pure over the user record and the full activity history.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`

	Check func(user *models.User, activities []models.Activity, now time.Time) bool `json:"-"`
}

// AchievementStatus is one row of the full-catalog report.
type AchievementStatus struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IsUnlocked  bool   `json:"isUnlocked"`
	Progress    int    `json:"progress"`
}

// catalog is the fixed, ordered badge set. Order only fixes iteration order;
// unlocking is order-independent because every predicate is monotonic in the
// activity history.
var catalog = []Achievement{
	{
		ID:          "first_activity",
		Name:        "Getting Started",
		Description: "Log your first activity",
		Icon:        "🚀",
		Check: func(_ *models.User, activities []models.Activity, _ time.Time) bool {
			return len(activities) >= 1
		},
	},
	{
		ID:          "biker_rookie",
		Name:        "Biker Rookie",
		Description: "Bike 10 km",
		Icon:        "🚴",
		Check: func(_ *models.User, activities []models.Activity, _ time.Time) bool {
			return sumByType(activities, models.ActivityBiking) >= 10
		},
	},
	{
		ID:          "biker_champ",
		Name:        "Biker Champion",
		Description: "Bike 100 km",
		Icon:        "🚵",
		Check: func(_ *models.User, activities []models.Activity, _ time.Time) bool {
			return sumByType(activities, models.ActivityBiking) >= 100
		},
	},
	{
		ID:          "eco_warrior",
		Name:        "Eco Warrior",
		Description: "Complete 10 eco-friendly activities",
		Icon:        "🛡️",
		Check: func(_ *models.User, activities []models.Activity, _ time.Time) bool {
			count := 0
			for _, a := range activities {
				if a.Type == models.ActivityBiking || a.Type == models.ActivityRecycling {
					count++
				}
			}
			return count >= 10
		},
	},
	{
		ID:          "carbon_conscious",
		Name:        "Carbon Conscious",
		Description: "Reduce carbon by 50 kg",
		Icon:        "🌱",
		Check: func(_ *models.User, activities []models.Activity, _ time.Time) bool {
			return TotalCarbon(activities) <= -50
		},
	},
	{
		ID:          "week_warrior",
		Name:        "Week Warrior",
		Description: "Log 7 activities within a week",
		Icon:        "🔥",
		Check: func(_ *models.User, activities []models.Activity, now time.Time) bool {
			// Threshold count over the trailing window, not a distinct-day
			// streak: 7 activities logged the same day qualify.
			cutoff := now.AddDate(0, 0, -7)
			recent := 0
			for _, a := range activities {
				if !a.Date.Before(cutoff) {
					recent++
				}
			}
			return recent >= 7
		},
	},
	{
		ID:          "recycling_master",
		Name:        "Recycling Master",
		Description: "Recycle 50 kg of materials",
		Icon:        "♻️",
		Check: func(_ *models.User, activities []models.Activity, _ time.Time) bool {
			return sumByType(activities, models.ActivityRecycling) >= 50
		},
	},
	{
		ID:          "zero_carbon",
		Name:        "Zero Carbon Hero",
		Description: "Achieve net zero carbon footprint",
		Icon:        "🌍",
		Check: func(_ *models.User, activities []models.Activity, _ time.Time) bool {
			return TotalCarbon(activities) <= 0 && len(activities) > 0
		},
	},
}

// Catalog returns the full badge catalog in evaluation order.
func Catalog() []Achievement {
	return catalog
}

// Evaluate scans the catalog against the user's activity history and unlocks
// every badge whose predicate now holds and whose id is not already in the
// user's unlocked list. It appends snapshot rows to user.Achievements, adds
// PointsPerAchievement per unlock, and returns the newly unlocked
// definitions. Already-unlocked ids are skipped without re-running their
// predicates, so repeated calls are idempotent and the score stays equal to
// PointsPerAchievement times the unlocked count.
//
// Evaluate does not touch the store. Persisting the mutated user — the new
// achievement rows together with the score, atomically — is the caller's
// job. Concurrent evaluations for the same user must be serialized by the
// caller; the unique index on (user_id, achievement_id) is the last-resort
// backstop against a double unlock.
func Evaluate(user *models.User, activities []models.Activity, now time.Time) []Achievement {
	unlocked := unlockedIDs(user)

	var newlyUnlocked []Achievement
	for _, achievement := range catalog {
		if unlocked[achievement.ID] {
			continue
		}

		if achievement.Check(user, activities, now) {
			user.Achievements = append(user.Achievements, models.UserAchievement{
				UserID:        user.ID,
				AchievementID: achievement.ID,
				Description:   achievement.Description,
				Icon:          achievement.Icon,
				UnlockedAt:    now,
			})
			user.AchievementPoints += PointsPerAchievement
			newlyUnlocked = append(newlyUnlocked, achievement)
		}
	}

	return newlyUnlocked
}

// CatalogStatus reports unlock state and a coarse progress signal (100 when
// the predicate currently holds, else 0) for every catalog entry. It is a
// read-only probe: an entry whose predicate holds but was never committed by
// Evaluate stays locked.
func CatalogStatus(user *models.User, activities []models.Activity, now time.Time) []AchievementStatus {
	unlocked := unlockedIDs(user)

	statuses := make([]AchievementStatus, 0, len(catalog))
	for _, achievement := range catalog {
		progress := 0
		if achievement.Check(user, activities, now) {
			progress = 100
		}

		statuses = append(statuses, AchievementStatus{
			ID:          achievement.ID,
			Name:        achievement.Name,
			Description: achievement.Description,
			Icon:        achievement.Icon,
			IsUnlocked:  unlocked[achievement.ID],
			Progress:    progress,
		})
	}

	return statuses
}

func unlockedIDs(user *models.User) map[string]bool {
	ids := make(map[string]bool, len(user.Achievements))
	for _, ua := range user.Achievements {
		ids[ua.AchievementID] = true
	}
	return ids
}

func sumByType(activities []models.Activity, t models.ActivityType) float64 {
	sum := 0.0
	for _, a := range activities {
		if a.Type == t {
			sum += a.Value
		}
	}
	return sum
}
