package planner

import (
	"fmt"
	"strings"

	"github.com/WUZhiyun112/travelplanner/internal/app/models"
)

const systemPrompt = "You are a professional travel planner who produces detailed, " +
	"practical itineraries. Your answers are well structured, accurate and realistic."

// promptTemplate is the fixed tail of every prompt: it pins the markdown
// shape the renderer understands (## / ### headings, **bold** labels and
// "- " bullets).
const promptTemplate = `Format the plan exactly like this:

## Trip Overview
- Destination: [name]
- Duration: [days]
- Best season: [when to go]

## Daily Itinerary

### Day 1: [theme]
**Morning:**
- [activity and time]
- [sight name and address]

**Afternoon:**
- [activity and time]
- [sight name and address]

**Evening:**
- [activity and time]
- [restaurant suggestion]

**Accommodation:**
- [hotel or guesthouse with price range]

**Getting around:**
- [transport suggestion]

### Day 2: [theme]
[continue in the same format...]

## Practical Information
- **Local transport:** [suggestions]
- **Food:** [local dishes and restaurants]
- **Watch out for:** [important notes]
- **Budget estimate:** [per day / total]

Keep the plan realistic and specific, with concrete sights, restaurants
and activities.`

// BuildPrompt assembles the generation prompt from the request fields and
// any destination search material.
func BuildPrompt(req models.ItineraryRequest, results []models.SearchResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a detailed %s-day travel plan for %s.\n\n",
		req.Days.String(), req.Destination)

	if req.Budget != "" {
		fmt.Fprintf(&b, "Budget: %s\n\n", req.Budget)
	}
	if req.Preferences != "" {
		fmt.Fprintf(&b, "Interests: %s\n\n", req.Preferences)
	}

	if len(results) > 0 {
		b.WriteString("Here is background material found on the web; use it to make the plan more accurate:\n\n")
		for i, r := range results {
			fmt.Fprintf(&b, "Source %d:\n", i+1)
			fmt.Fprintf(&b, "Title: %s\n", r.Title)
			fmt.Fprintf(&b, "Content: %s\n", r.Snippet)
			fmt.Fprintf(&b, "Link: %s\n\n", r.Link)
		}
		b.WriteString("Combine this material with your own knowledge when writing the plan.\n\n")
	}

	b.WriteString(promptTemplate)
	return b.String()
}
