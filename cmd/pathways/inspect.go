package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/normanking/pathways/pkg/navstate"
)

var (
	inspectHeaderStyle  = lipgloss.NewStyle().Bold(true)
	inspectFocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	inspectDimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <state.json>",
		Short: "Pretty-print a navigation state snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			st, err := navstate.Decode(data)
			if err != nil {
				return err
			}

			switch s := st.(type) {
			case *navstate.NavigationState:
				printFullState(s, 0)
			case *navstate.PartialState:
				fmt.Println(inspectDimStyle.Render("(partial state - requires rehydration)"))
				printPartialState(s, 0)
			}
			return nil
		},
	}
}

func printFullState(s *navstate.NavigationState, depth int) {
	pad := strings.Repeat("  ", depth)
	fmt.Printf("%s%s %s\n", pad, inspectHeaderStyle.Render(s.Type), inspectDimStyle.Render(s.Key))
	for i, route := range s.Routes {
		marker := " "
		label := route.Name
		if i == s.Index {
			marker = "*"
			label = inspectFocusedStyle.Render(label)
		}
		fmt.Printf("%s %s %s %s\n", pad, marker, label, inspectDimStyle.Render(route.Key))
		if len(route.Params) > 0 {
			fmt.Printf("%s     %s\n", pad, inspectDimStyle.Render(fmt.Sprintf("params: %v", route.Params)))
		}
		switch nested := route.State.(type) {
		case *navstate.NavigationState:
			printFullState(nested, depth+2)
		case *navstate.PartialState:
			printPartialState(nested, depth+2)
		}
	}
}

func printPartialState(s *navstate.PartialState, depth int) {
	pad := strings.Repeat("  ", depth)
	kind := s.Type
	if kind == "" {
		kind = "?"
	}
	fmt.Printf("%s%s %s\n", pad, inspectHeaderStyle.Render(kind), inspectDimStyle.Render("stale"))
	for i, route := range s.Routes {
		marker := " "
		if s.Index != nil && i == *s.Index {
			marker = "*"
		}
		fmt.Printf("%s %s %s\n", pad, marker, route.Name)
		if route.State != nil {
			printPartialState(route.State, depth+2)
		}
	}
}
