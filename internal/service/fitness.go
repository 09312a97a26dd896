package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// metTable — MET-коэффициенты поддерживаемых упражнений.
var metTable = map[string]float64{
	"squat":          5.0,
	"deadlift":       6.0,
	"bench_press":    6.0,
	"push_up":        8.0,
	"pull_up":        8.0,
	"plank":          3.0,
	"shoulder_press": 5.0,
	"triceps":        4.5,
	"leg_extension":  5.0,
}

// Exercise — элемент каталога упражнений.
type Exercise struct {
	Name string  `json:"name"`
	MET  float64 `json:"met"`
}

// WorkoutCalories — результат расчёта калорий одной тренировки.
type WorkoutCalories struct {
	Name           string  `json:"name"`
	Gender         string  `json:"gender"`
	Age            int     `json:"age"`
	Height         float64 `json:"height"`
	Weight         float64 `json:"weight"`
	Exercise       string  `json:"exercise"`
	Duration       int     `json:"duration"`
	BMR            float64 `json:"bmr"`
	CaloriesBurned float64 `json:"caloriesBurned"`
}

// Exercises возвращает каталог упражнений, отсортированный по имени.
func (s *Service) Exercises() []Exercise {
	out := make([]Exercise, 0, len(metTable))
	for name, met := range metTable {
		out = append(out, Exercise{Name: name, MET: met})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// AvailableExercises возвращает имена поддерживаемых упражнений
// (для сообщения об ошибке при неизвестном упражнении).
func (s *Service) AvailableExercises() []string {
	names := make([]string, 0, len(metTable))
	for name := range metTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CalculateWorkout считает BMR и сожжённые калории тренировки по
// профилю пользователя. Формулы чистые, вся состояние-зависимость —
// один поход за профилем.
func (s *Service) CalculateWorkout(ctx context.Context, userID uuid.UUID, exercise string, durationMin int) (*WorkoutCalories, error) {
	const op = "service.fitness.CalculateWorkout"

	if exercise == "" || durationMin <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	key := strings.ToLower(exercise)
	met, ok := metTable[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrUnknownExercise)
	}

	user, err := s.UserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bmr := calcBMR(user.CurrentWeight, user.Height, user.Age, user.Gender)
	burned := caloriesBurned(met, user.CurrentWeight, float64(durationMin))

	return &WorkoutCalories{
		Name:           user.Name,
		Gender:         user.Gender,
		Age:            user.Age,
		Height:         user.Height,
		Weight:         user.CurrentWeight,
		Exercise:       key,
		Duration:       durationMin,
		BMR:            round2(bmr),
		CaloriesBurned: round2(burned),
	}, nil
}

// calcBMR — базовый метаболизм по Mifflin-St Jeor.
func calcBMR(weightKg, heightCm float64, age int, gender string) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if strings.ToLower(gender) == "male" {
		return base + 5
	}

	return base - 161
}

// caloriesBurned — сожжённые калории: 0.0175 * MET * вес * минуты.
func caloriesBurned(met, weightKg, durationMin float64) float64 {
	return 0.0175 * met * weightKg * durationMin
}

// computeTargetCalories — дневная цель по калориям: TDEE минус дневной
// дефицит из недельной цели (7700 ккал на кг), с нижним порогом
// 1500/1200 ккал. Возвращает 0, если профиль неполон.
func computeTargetCalories(gender string, weightKg, heightCm float64, age int, activityLevel, weeklyTargetKg float64) int {
	if weightKg == 0 || heightCm == 0 || age == 0 || gender == "" || activityLevel == 0 || weeklyTargetKg == 0 {
		return 0
	}

	bmr := calcBMR(weightKg, heightCm, age, gender)
	tdee := bmr * activityLevel
	dailyDeficit := weeklyTargetKg * 7700 / 7
	target := int(math.Round(tdee - dailyDeficit))

	minCal := 1200
	if strings.ToLower(gender) == "male" {
		minCal = 1500
	}

	if target < minCal {
		return minCal
	}

	return target
}

// round2 округляет до двух знаков.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
