package commands_test

import (
	"context"
	"encoding/json"
	"fmt"

	"zukus-desktop/internal/commands"
)

type greetArgs struct {
	Name string `json:"name"`
}

func greet(_ context.Context, args greetArgs) (string, error) {
	return fmt.Sprintf("Hello, %s! You've been greeted from Go!", args.Name), nil
}

func ExampleRegistry_Declare() {
	registry := commands.NewRegistry()
	err := registry.Declare(commands.Descriptor{
		Name:    "greet",
		Params:  []commands.Param{{Name: "name", Type: "string"}},
		Returns: "string",
		Handler: commands.Typed(greet),
	})
	if err != nil {
		panic(err)
	}

	out, _ := registry.Invoke(context.Background(), "greet", json.RawMessage(`{"name":"Dervin"}`))
	fmt.Println(out)
	// Output: Hello, Dervin! You've been greeted from Go!
}
