package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/Raksha/backend/internal/api/client"
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
)

const usage = `Usage: overlayctl [flags] <command> [args]

Commands:
  health
  catalog
  create
  list
  delete   <desktop>
  windows  <desktop>
  preset   <desktop> <kind>
  focus    <desktop> <window>
  close    <desktop> <window>
  minimize <desktop> <window>
  move     <desktop> <window> <x> <y>
  resize   <desktop> <window> <width> <height>
  modal    <desktop> <modal>
  unmodal  <desktop>
  cards    <desktop> on|off

Flags:
`

func main() {
	addr := flag.String("addr", envOr("OVERLAY_ADDR", "http://localhost:8000"), "Overlay service base URL")
	timeout := flag.Duration("timeout", 10*time.Second, "Request timeout")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := client.DefaultConfig(*addr)
	cfg.Timeout = *timeout
	c := client.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 2**timeout)
	defer cancel()

	out, err := run(ctx, c, flag.Arg(0), flag.Args()[1:])
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(os.Stderr, "error: %s (%d)\n", apiErr.Message, apiErr.StatusCode)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}

	data, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func run(ctx context.Context, c *client.Client, cmd string, args []string) (interface{}, error) {
	need := map[string]int{
		"health": 0, "catalog": 0, "create": 0, "list": 0,
		"delete": 1, "windows": 1, "unmodal": 1,
		"preset": 2, "focus": 2, "close": 2, "minimize": 2, "modal": 2, "cards": 2,
		"move": 4, "resize": 4,
	}
	n, ok := need[cmd]
	if !ok {
		return nil, fmt.Errorf("unknown command %q", cmd)
	}
	if len(args) != n {
		return nil, fmt.Errorf("%s takes %d argument(s), got %d", cmd, n, len(args))
	}

	switch cmd {
	case "health":
		return c.Health(ctx)
	case "catalog":
		return c.Catalog(ctx)
	case "create":
		return c.CreateDesktop(ctx)
	case "list":
		return c.ListDesktops(ctx)
	case "delete":
		return result(true), c.DeleteDesktop(ctx, args[0])
	case "windows":
		return c.Snapshot(ctx, args[0])
	case "preset":
		return c.OpenPreset(ctx, args[0], types.ContentKind(args[1]))
	case "focus":
		return wrap(c.FocusWindow(ctx, args[0], args[1]))
	case "close":
		return wrap(c.CloseWindow(ctx, args[0], args[1]))
	case "minimize":
		return wrap(c.MinimizeWindow(ctx, args[0], args[1]))
	case "move":
		a, b, err := ints(args[2], args[3])
		if err != nil {
			return nil, err
		}
		return wrap(c.MoveWindow(ctx, args[0], args[1], types.Position{X: a, Y: b}))
	case "resize":
		a, b, err := ints(args[2], args[3])
		if err != nil {
			return nil, err
		}
		return wrap(c.ResizeWindow(ctx, args[0], args[1], types.Size{Width: a, Height: b}))
	case "modal":
		return c.OpenModal(ctx, args[0], args[1])
	case "unmodal":
		return c.CloseModal(ctx, args[0])
	default: // cards
		switch args[1] {
		case "on":
			return c.SetCardsDisabled(ctx, args[0], false)
		case "off":
			return c.SetCardsDisabled(ctx, args[0], true)
		}
		return nil, fmt.Errorf("cards takes on or off, got %q", args[1])
	}
}

func result(success bool) map[string]bool {
	return map[string]bool{"success": success}
}

func wrap(success bool, err error) (interface{}, error) {
	return result(success), err
}

func ints(a, b string) (int, int, error) {
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", a)
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", b)
	}
	return x, y, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
