// ABOUTME: Fixed default exercise catalog used to seed a fresh store.
// ABOUTME: 33 exercises across the 8 muscle groups, all isCustom=false.
package models

// DefaultExercises is the catalog seeded into a freshly created store.
// Seeding happens exactly once, at store creation; the catalog is never
// reconciled afterwards, so changes here only reach new installations.
var DefaultExercises = []Exercise{
	// Cardio
	{Name: "Elliptical Trainer", Group: GroupCardio},
	{Name: "Treadmill", Group: GroupCardio},
	{Name: "Exercise Bike", Group: GroupCardio},
	{Name: "Rowing Machine", Group: GroupCardio},
	// Chest
	{Name: "Barbell Bench Press", Group: GroupChest},
	{Name: "Dumbbell Bench Press", Group: GroupChest},
	{Name: "Incline Bench Press", Group: GroupChest},
	{Name: "Machine Chest Fly", Group: GroupChest},
	{Name: "Push-Ups", Group: GroupChest},
	// Back
	{Name: "Lat Pulldown", Group: GroupBack},
	{Name: "Seated Cable Row", Group: GroupBack},
	{Name: "Bent-Over Barbell Row", Group: GroupBack},
	{Name: "One-Arm Dumbbell Row", Group: GroupBack},
	{Name: "Pull-Ups", Group: GroupBack},
	{Name: "Back Extension", Group: GroupBack},
	// Arms
	{Name: "Barbell Curl", Group: GroupArms},
	{Name: "Dumbbell Curl", Group: GroupArms},
	{Name: "Lying Triceps Extension", Group: GroupArms},
	{Name: "Triceps Pushdown", Group: GroupArms},
	// Legs
	{Name: "Barbell Squat", Group: GroupLegs},
	{Name: "Leg Press", Group: GroupLegs},
	{Name: "Leg Extension", Group: GroupLegs},
	{Name: "Leg Curl", Group: GroupLegs},
	{Name: "Dumbbell Lunges", Group: GroupLegs},
	// Shoulders
	{Name: "Seated Dumbbell Press", Group: GroupShoulders},
	{Name: "Lateral Raise", Group: GroupShoulders},
	{Name: "Upright Row", Group: GroupShoulders},
	// Abs
	{Name: "Crunches", Group: GroupAbs},
	{Name: "Plank", Group: GroupAbs},
	{Name: "Hanging Leg Raise", Group: GroupAbs},
	// Stretching
	{Name: "Back Stretch", Group: GroupStretching},
	{Name: "Leg Stretch", Group: GroupStretching},
	{Name: "Shoulder Stretch", Group: GroupStretching},
}
