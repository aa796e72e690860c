// Package assistant is the conversational meal-planning helper. It grounds
// the model in the dish catalog and the current plan, and applies the action
// block the model may embed in its reply.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"mealplex/internal/dish"
	"mealplex/internal/llm"
	"mealplex/internal/planner"
	"mealplex/internal/shopping"
)

// Message is one prior exchange turn, passed back in for context.
type Message struct {
	Role    string `json:"role"` // "user" or "model"
	Content string `json:"content"`
}

// Action is the app operation the model may request at the end of a reply.
type Action struct {
	Type     string `json:"type"` // ADD_MEAL or ADD_SHOPPING
	DishName string `json:"dishName,omitempty"`
	Date     string `json:"date,omitempty"`
	MealType string `json:"mealType,omitempty"`
	Item     string `json:"item,omitempty"`
}

var actionPattern = regexp.MustCompile(`\[ACTION\](.*?)\[/ACTION\]`)

// Assistant wires the text generator to the planner and shopping stores.
type Assistant struct {
	textGen  llm.TextGenerator
	planner  *planner.Store
	shopping *shopping.Store
}

// New creates an Assistant.
func New(textGen llm.TextGenerator, plannerStore *planner.Store, shoppingStore *shopping.Store) *Assistant {
	return &Assistant{
		textGen:  textGen,
		planner:  plannerStore,
		shopping: shoppingStore,
	}
}

// Chat sends the user message (plus history) to the model, applies any
// embedded action, and returns the reply with the action block stripped.
// Action failures are logged, never returned; the conversation always gets
// a reply.
func (a *Assistant) Chat(ctx context.Context, userMessage string, history []Message) (string, error) {
	prompt := a.buildPrompt(userMessage, history)

	text, err := a.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate assistant reply: %w", err)
	}

	if match := actionPattern.FindStringSubmatch(text); match != nil {
		var action Action
		if err := json.Unmarshal([]byte(match[1]), &action); err != nil {
			log.Printf("Failed to parse assistant action: %v", err)
		} else {
			a.apply(action)
		}
	}

	return strings.TrimSpace(actionPattern.ReplaceAllString(text, "")), nil
}

func (a *Assistant) apply(action Action) {
	switch action.Type {
	case "ADD_MEAL":
		slot := dish.MealSlot(action.MealType)
		if !slot.Valid() {
			log.Printf("Assistant requested unknown meal slot %q, ignoring", action.MealType)
			return
		}
		d, ok := dish.FindByName(dish.Catalog, action.DishName)
		if !ok {
			d = a.planner.AddCustomDish(action.DishName, "")
		}
		a.planner.AddDishToDate(action.Date, slot, d.ID)
	case "ADD_SHOPPING":
		a.shopping.AddItem(action.Item, "")
	default:
		log.Printf("Assistant requested unknown action type %q, ignoring", action.Type)
	}
}

func (a *Assistant) buildPrompt(userMessage string, history []Message) string {
	names := make([]string, 0, len(dish.Catalog))
	for _, d := range dish.Catalog {
		names = append(names, d.Name)
	}

	planSnapshot, err := json.Marshal(a.planner.Plan())
	if err != nil {
		planSnapshot = []byte("{}")
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are "MealMind", a smart meal planning assistant for the Meal Plex app.

CORE KNOWLEDGE:
- Available Dishes: %s.
- Current Plan: %s.

YOUR GOALS:
1. Help users discover new recipes.
2. Add meals to their plan.
3. Add ingredients to their shopping list.

RESPONSE FORMAT:
Always respond in a helpful, conversational tone.
If you perform an action (like adding a meal), tell the user.

JSON ACTIONS:
At the end of your response, if you need to perform an app action, include a JSON block starting with [ACTION] and ending with [/ACTION].
Supported actions:
- {"type": "ADD_MEAL", "dishName": "...", "date": "YYYY-MM-DD", "mealType": "breakfast/lunch/dinner/snack"}
- {"type": "ADD_SHOPPING", "item": "..."}

Example: "I've added Palak Paneer to your dinner for Tuesday! [ACTION]{"type": "ADD_MEAL", "dishName": "Palak Paneer", "date": "2025-12-23", "mealType": "dinner"}[/ACTION]"

`, strings.Join(names, ", "), planSnapshot)

	for _, msg := range history {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
	}
	fmt.Fprintf(&b, "user: %s\n", userMessage)
	return b.String()
}
