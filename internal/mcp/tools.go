// ABOUTME: MCP tool implementations for the gym workout store.
// ABOUTME: Covers the catalog, programs, live workout logging, and export.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/gym/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// list_exercises
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List exercises, optionally filtered by muscle group",
	}, s.handleListExercises)

	// add_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add a custom exercise to the catalog",
	}, s.handleAddExercise)

	// list_programs
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_programs",
		Description: "List workout programs",
	}, s.handleListPrograms)

	// start_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_workout",
		Description: "Start a workout session, optionally from a program",
	}, s.handleStartWorkout)

	// log_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_set",
		Description: "Record weight and reps for a set in an in-progress workout",
	}, s.handleLogSet)

	// finish_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "finish_workout",
		Description: "Finish an in-progress workout and stamp its end time",
	}, s.handleFinishWorkout)

	// workouts_by_date
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "workouts_by_date",
		Description: "List workouts logged on a date (YYYY-MM-DD)",
	}, s.handleWorkoutsByDate)

	// workout_dates
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "workout_dates",
		Description: "List all dates that have at least one workout",
	}, s.handleWorkoutDates)

	// export_data
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "export_data",
		Description: "Export all exercises, programs, and workouts as a snapshot",
	}, s.handleExportData)
}

// Tool input/output types

type listExercisesInput struct {
	Group string `json:"group,omitempty" jsonschema:"Filter by muscle group (stretching, cardio, chest, back, arms, legs, shoulders, abs)"`
}

type addExerciseInput struct {
	Name  string `json:"name" jsonschema:"Exercise name"`
	Group string `json:"group" jsonschema:"Muscle group (stretching, cardio, chest, back, arms, legs, shoulders, abs)"`
}

type exerciseOutput struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Group   string `json:"group"`
	Message string `json:"message"`
}

type startWorkoutInput struct {
	ProgramID uint64 `json:"program_id,omitempty" jsonschema:"Program to start from; omit for a free workout"`
	Name      string `json:"name,omitempty" jsonschema:"Workout name for a free workout (default Free Workout)"`
}

type workoutOutput struct {
	ID      uint64 `json:"id"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

type logSetInput struct {
	WorkoutID     uint64   `json:"workout_id" jsonschema:"In-progress workout id"`
	ExerciseIndex int      `json:"exercise_index" jsonschema:"Zero-based index of the exercise within the workout"`
	SetIndex      int      `json:"set_index" jsonschema:"Zero-based set index; one past the end appends a new set"`
	Weight        *float64 `json:"weight,omitempty" jsonschema:"Weight for the set; omit to leave unfilled"`
	Reps          *float64 `json:"reps,omitempty" jsonschema:"Reps for the set; omit to leave unfilled"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type workoutsByDateInput struct {
	Date string `json:"date" jsonschema:"Calendar date in YYYY-MM-DD form"`
}

type finishWorkoutInput struct {
	WorkoutID uint64 `json:"workout_id" jsonschema:"In-progress workout id"`
}

// Tool handlers

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, any, error) {
	if input.Group != "" {
		group := models.MuscleGroup(input.Group)
		if !models.IsValidMuscleGroup(group) {
			return nil, nil, fmt.Errorf("unknown muscle group: %s", input.Group)
		}
		grouped, err := s.repo.ExercisesByGroup()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list exercises: %w", err)
		}
		return nil, grouped[group], nil
	}

	exercises, err := s.repo.ListExercises()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	if len(exercises) == 0 {
		return nil, map[string]any{"message": "No exercises found."}, nil
	}
	return nil, exercises, nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, exerciseOutput, error) {
	group := models.MuscleGroup(input.Group)
	if !models.IsValidMuscleGroup(group) {
		return nil, exerciseOutput{}, fmt.Errorf("unknown muscle group: %s", input.Group)
	}
	if input.Name == "" {
		return nil, exerciseOutput{}, fmt.Errorf("exercise name is required")
	}

	ex, err := s.repo.AddExercise(input.Name, group)
	if err != nil {
		return nil, exerciseOutput{}, fmt.Errorf("failed to add exercise: %w", err)
	}

	return nil, exerciseOutput{
		ID:      ex.ID,
		Name:    ex.Name,
		Group:   string(ex.Group),
		Message: fmt.Sprintf("Added %s (%s, ID: %d)", ex.Name, ex.Group, ex.ID),
	}, nil
}

func (s *Server) handleListPrograms(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	programs, err := s.repo.ListPrograms()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list programs: %w", err)
	}
	if len(programs) == 0 {
		return nil, map[string]any{"message": "No programs found."}, nil
	}
	return nil, programs, nil
}

func (s *Server) handleStartWorkout(ctx context.Context, req *mcp.CallToolRequest, input startWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	var w *models.Workout
	if input.ProgramID != 0 {
		p, err := s.repo.GetProgram(input.ProgramID)
		if err != nil {
			return nil, workoutOutput{}, fmt.Errorf("failed to load program: %w", err)
		}
		if p == nil {
			return nil, workoutOutput{}, fmt.Errorf("program not found: %d", input.ProgramID)
		}
		w = models.FromProgram(p)
	} else {
		name := input.Name
		if name == "" {
			name = "Free Workout"
		}
		w = models.NewWorkout(name)
	}

	// Persisted immediately so the session survives a crash mid-workout.
	id, err := s.repo.AddWorkout(w)
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to start workout: %w", err)
	}

	return nil, workoutOutput{
		ID:      id,
		Date:    w.Date,
		Message: fmt.Sprintf("Started %s (ID: %d)", w.ProgramName, id),
	}, nil
}

func (s *Server) handleLogSet(ctx context.Context, req *mcp.CallToolRequest, input logSetInput) (*mcp.CallToolResult, simpleOutput, error) {
	// Writes between here and the debounced save go through the saver,
	// so flush first to avoid resurrecting an older in-flight state.
	if err := s.saver.Flush(); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to flush pending save: %w", err)
	}

	w, err := s.repo.GetWorkout(input.WorkoutID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to load workout: %w", err)
	}
	if w == nil {
		return nil, simpleOutput{}, fmt.Errorf("workout not found: %d", input.WorkoutID)
	}
	if input.ExerciseIndex < 0 || input.ExerciseIndex >= len(w.Exercises) {
		return nil, simpleOutput{}, fmt.Errorf("exercise index %d out of range", input.ExerciseIndex)
	}

	ex := &w.Exercises[input.ExerciseIndex]
	switch {
	case input.SetIndex >= 0 && input.SetIndex < len(ex.Sets):
		// edit in place
	case input.SetIndex == len(ex.Sets):
		ex.Sets = append(ex.Sets, models.Set{})
	default:
		return nil, simpleOutput{}, fmt.Errorf("set index %d out of range", input.SetIndex)
	}

	set := &ex.Sets[input.SetIndex]
	if input.Weight != nil {
		set.Weight = models.Num(*input.Weight)
	}
	if input.Reps != nil {
		set.Reps = models.Num(*input.Reps)
	}

	s.saver.Schedule(w)

	return nil, simpleOutput{
		Message: fmt.Sprintf("Logged set %d for %s", input.SetIndex+1, ex.Name),
	}, nil
}

func (s *Server) handleFinishWorkout(ctx context.Context, req *mcp.CallToolRequest, input finishWorkoutInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.saver.Flush(); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to flush pending save: %w", err)
	}

	w, err := s.repo.GetWorkout(input.WorkoutID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to load workout: %w", err)
	}
	if w == nil {
		return nil, simpleOutput{}, fmt.Errorf("workout not found: %d", input.WorkoutID)
	}

	w.Finish()
	if err := s.repo.UpdateWorkout(w); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to finish workout: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Finished %s (ID: %d)", w.ProgramName, w.ID),
	}, nil
}

func (s *Server) handleWorkoutsByDate(ctx context.Context, req *mcp.CallToolRequest, input workoutsByDateInput) (*mcp.CallToolResult, any, error) {
	workouts, err := s.repo.WorkoutsByDate(input.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	if len(workouts) == 0 {
		return nil, map[string]any{"message": fmt.Sprintf("No workouts on %s.", input.Date)}, nil
	}
	return nil, workouts, nil
}

func (s *Server) handleWorkoutDates(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	dates, err := s.repo.WorkoutDates()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list dates: %w", err)
	}
	if len(dates) == 0 {
		return nil, map[string]any{"message": "No workouts logged yet."}, nil
	}
	return nil, dates, nil
}

func (s *Server) handleExportData(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	if err := s.saver.Flush(); err != nil {
		return nil, nil, fmt.Errorf("failed to flush pending save: %w", err)
	}

	snap, err := s.repo.ExportAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to export: %w", err)
	}
	return nil, snap, nil
}
