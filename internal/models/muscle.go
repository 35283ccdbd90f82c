// ABOUTME: MuscleGroup enumeration with display metadata.
// ABOUTME: The eight groups are fixed; user-defined groups are not supported.
package models

// MuscleGroup identifies one of the fixed muscle group categories.
type MuscleGroup string

const (
	GroupStretching MuscleGroup = "stretching"
	GroupCardio     MuscleGroup = "cardio"
	GroupChest      MuscleGroup = "chest"
	GroupBack       MuscleGroup = "back"
	GroupArms       MuscleGroup = "arms"
	GroupLegs       MuscleGroup = "legs"
	GroupShoulders  MuscleGroup = "shoulders"
	GroupAbs        MuscleGroup = "abs"
)

// AllMuscleGroups lists every group in display order.
var AllMuscleGroups = []MuscleGroup{
	GroupStretching,
	GroupCardio,
	GroupChest,
	GroupBack,
	GroupArms,
	GroupLegs,
	GroupShoulders,
	GroupAbs,
}

// GroupInfo carries display metadata for a muscle group.
type GroupInfo struct {
	Label string
	Icon  string
	Color string
}

// MuscleGroupInfo maps each group to its display metadata.
var MuscleGroupInfo = map[MuscleGroup]GroupInfo{
	GroupStretching: {Label: "Stretching", Icon: "🧘", Color: "#64d2ff"},
	GroupCardio:     {Label: "Cardio", Icon: "🏃", Color: "#30d158"},
	GroupChest:      {Label: "Chest", Icon: "💪", Color: "#ff9500"},
	GroupBack:       {Label: "Back", Icon: "🔙", Color: "#007aff"},
	GroupArms:       {Label: "Arms", Icon: "💪", Color: "#ff375f"},
	GroupLegs:       {Label: "Legs", Icon: "🦵", Color: "#bf5af2"},
	GroupShoulders:  {Label: "Shoulders", Icon: "🏋️", Color: "#ff6482"},
	GroupAbs:        {Label: "Abs", Icon: "🎯", Color: "#ffd60a"},
}

// ProgramColors is the palette offered when creating a program.
var ProgramColors = []string{
	"#007aff", "#ff9500", "#5856d6", "#ff375f",
	"#30d158", "#64d2ff", "#bf5af2", "#ff6482",
}

// IsValidMuscleGroup reports whether g is one of the fixed groups.
func IsValidMuscleGroup(g MuscleGroup) bool {
	_, ok := MuscleGroupInfo[g]
	return ok
}
