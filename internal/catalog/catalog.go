// Package catalog holds the static question content, keyed by
// category and type. It exists only to seed the questions collection
// when it is empty.
package catalog

import "github.com/Rohit1301k/dareroom/internal/model"

// Category tags offered at room creation.
const (
	CategoryFunny     = "funny"
	CategoryRomantic  = "romantic"
	CategoryStrip     = "strip"
	CategoryAdult     = "18+"
	CategoryEmotional = "emotional"
)

// Categories lists every known category tag.
func Categories() []string {
	return []string{CategoryFunny, CategoryRomantic, CategoryStrip, CategoryAdult, CategoryEmotional}
}

// Known reports whether the tag is a valid category.
func Known(category string) bool {
	for _, c := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// Questions returns the full seed set.
func Questions() []model.Question {
	return []model.Question{
		{Category: CategoryFunny, Type: model.TurnTypeTruth, Text: "What is the most embarrassing thing you have ever done?"},
		{Category: CategoryFunny, Type: model.TurnTypeTruth, Text: "What is the weirdest dream you have ever had?"},
		{Category: CategoryFunny, Type: model.TurnTypeTruth, Text: "What is the most childish thing you still do?"},
		{Category: CategoryFunny, Type: model.TurnTypeDare, Text: "Do your best impression of another player."},
		{Category: CategoryFunny, Type: model.TurnTypeDare, Text: "Send the 10th photo in your camera roll."},
		{Category: CategoryFunny, Type: model.TurnTypeDare, Text: "Speak in an accent for the next three rounds."},

		{Category: CategoryRomantic, Type: model.TurnTypeTruth, Text: "Who was your first crush and what were they like?"},
		{Category: CategoryRomantic, Type: model.TurnTypeTruth, Text: "What is your idea of a perfect date?"},
		{Category: CategoryRomantic, Type: model.TurnTypeTruth, Text: "What is the most romantic thing someone has done for you?"},
		{Category: CategoryRomantic, Type: model.TurnTypeDare, Text: "Write a short love poem about the person to your right."},
		{Category: CategoryRomantic, Type: model.TurnTypeDare, Text: "Send a romantic message to someone not in this game."},
		{Category: CategoryRomantic, Type: model.TurnTypeDare, Text: "Give a 30-second speech about why love is important."},

		{Category: CategoryStrip, Type: model.TurnTypeTruth, Text: "Have you ever been caught not fully dressed?"},
		{Category: CategoryStrip, Type: model.TurnTypeTruth, Text: "What is the least amount of clothing you have worn in public?"},
		{Category: CategoryStrip, Type: model.TurnTypeTruth, Text: "Have you ever gone skinny dipping?"},
		{Category: CategoryStrip, Type: model.TurnTypeDare, Text: "Remove one item of clothing for one round."},
		{Category: CategoryStrip, Type: model.TurnTypeDare, Text: "Show everyone your tan lines if you have any."},
		{Category: CategoryStrip, Type: model.TurnTypeDare, Text: "Play the next round with your shirt turned inside out."},

		{Category: CategoryAdult, Type: model.TurnTypeTruth, Text: "What is your biggest turn-on?"},
		{Category: CategoryAdult, Type: model.TurnTypeTruth, Text: "What is your wildest fantasy?"},
		{Category: CategoryAdult, Type: model.TurnTypeTruth, Text: "Where is the strangest place you have been intimate?"},
		{Category: CategoryAdult, Type: model.TurnTypeDare, Text: "Demonstrate your go-to bedroom move on a pillow."},
		{Category: CategoryAdult, Type: model.TurnTypeDare, Text: "Send the last spicy text you sent or received (blur out names)."},
		{Category: CategoryAdult, Type: model.TurnTypeDare, Text: "Describe in detail the most intimate experience you have had."},

		{Category: CategoryEmotional, Type: model.TurnTypeTruth, Text: "What is something you are afraid to tell people?"},
		{Category: CategoryEmotional, Type: model.TurnTypeTruth, Text: "When was the last time you cried and why?"},
		{Category: CategoryEmotional, Type: model.TurnTypeTruth, Text: "What is the biggest mistake you have made in a relationship?"},
		{Category: CategoryEmotional, Type: model.TurnTypeDare, Text: "Call someone you miss and tell them you are thinking of them."},
		{Category: CategoryEmotional, Type: model.TurnTypeDare, Text: "Share a personal insecurity with the group."},
		{Category: CategoryEmotional, Type: model.TurnTypeDare, Text: "Write a heartfelt anonymous compliment to each player."},
	}
}
