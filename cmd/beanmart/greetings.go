package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
)

var greetings = [...]string{
	"The kettle is on. You're still outside.",
	"Fresh roast Tuesday. Your cart is emptier than the grinder.",
	"A light roast waits for no one. Well, about two weeks.",
	"We weighed the beans twice. We can't weigh your patience.",
	"Somewhere a pour-over is blooming without you.",
	"The espresso machine asked about you. We said you'd be right in.",
	"Single origin, many doors. This one needs a password.",
	"Your usual is ready. Whoever you are.",
	"The grinder's warm and the scale is zeroed.",
	"Decaf is a choice. Staying signed out is another.",
	"Eighteen grams in, thirty-six out. You in, hopefully.",
	"We roasted something with notes of jasmine. You'd like it.",
}

func printGreeting(out io.Writer) {
	msg := greetings[rand.IntN(len(greetings))]

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#e8b86d")).
		Bold(true).
		Render("BEANMART")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(msg)

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("To sign in: beanmart login")

	fmt.Fprintf(out, "\n%s\n\n%s\n\n%s\n\n", title, quote, hint)
}
