package nutrition

import "github.com/saadjs/nutripet/internal/model"

// SatietyLabel describes a hunger score in words.
func SatietyLabel(hunger float64) string {
	switch {
	case hunger > 80:
		return "Very Satisfied"
	case hunger > 60:
		return "Satisfied"
	case hunger > 40:
		return "A Bit Hungry"
	case hunger > 20:
		return "Hungry"
	default:
		return "Starving"
	}
}

type MeterColor string

const (
	MeterGreen MeterColor = "green"
	MeterAmber MeterColor = "amber"
	MeterRed   MeterColor = "red"
)

func MeterColorFor(hunger float64) MeterColor {
	switch {
	case hunger > happyAbove:
		return MeterGreen
	case hunger > sleepyAbove:
		return MeterAmber
	default:
		return MeterRed
	}
}

// Face returns the pet emoji for a mood.
func Face(m model.Mood) string {
	switch m {
	case model.MoodHappy:
		return "😺"
	case model.MoodSleepy:
		return "😾"
	case model.MoodHungry:
		return "🙀"
	default:
		return "🐱"
	}
}

// Animation names the idle animation for a mood.
func Animation(m model.Mood) string {
	switch m {
	case model.MoodHappy:
		return "bounce"
	case model.MoodSleepy:
		return "pulse"
	case model.MoodHungry:
		return "wiggle"
	default:
		return ""
	}
}

type macroName string

const (
	macroProtein macroName = "protein"
	macroCarbs   macroName = "carbs"
	macroFat     macroName = "fat"
)

// lowestMacro picks the least-progressed of protein, carbs and fat. Ties go
// to the earlier one in that order.
func lowestMacro(p model.Progress) macroName {
	lowest, value := macroProtein, p.Protein
	if p.Carbs < value {
		lowest, value = macroCarbs, p.Carbs
	}
	if p.Fat < value {
		lowest = macroFat
	}
	return lowest
}

// MeterInsight is the hint shown under the hunger meter.
func MeterInsight(p model.Progress) string {
	lowest := lowestMacro(p)
	switch {
	case p.Calories < 25:
		return "Your pet is hungry! Time to eat something."
	case lowest == macroProtein && p.Protein < 30:
		return "Your pet needs more protein to build muscle!"
	case lowest == macroCarbs && p.Carbs < 30:
		return "Your pet needs more energy from carbs!"
	case lowest == macroFat && p.Fat < 30:
		return "Your pet needs healthy fats for hormone balance!"
	case p.Calories > 90:
		return "Your pet is fully satisfied for now!"
	default:
		return "Your pet is doing well with nutrition!"
	}
}

// AvatarMessage is what the pet says next to its face. Empty when nothing
// stands out.
func AvatarMessage(p model.Progress) string {
	lowest := lowestMacro(p)
	switch {
	case p.Calories < 30:
		return "Your pet is hungry!"
	case lowest == macroProtein && p.Protein < 60:
		return "Your pet needs more protein!"
	case lowest == macroCarbs && p.Carbs < 60:
		return "Your pet needs more energy from carbs!"
	case lowest == macroFat && p.Fat < 60:
		return "Your pet needs more healthy fats!"
	case p.Calories > 95:
		return "Your pet is happy and energized!"
	default:
		return ""
	}
}
