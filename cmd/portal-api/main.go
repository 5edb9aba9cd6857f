// Command portal-api issues a single request through the shared portal API
// client and prints the response.
//
//	portal-api [-config config.toml] METHOD PATH [BODY]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JaimeStill/lang-portal/internal/config"
	"github.com/JaimeStill/lang-portal/pkg/client"
	"github.com/JaimeStill/lang-portal/pkg/logging"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "portal-api:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("portal-api", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.BaseConfigFile, "path to the configuration file")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: portal-api [-config config.toml] METHOD PATH [BODY]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 || fs.NArg() > 3 {
		fs.Usage()
		return errors.New("expected METHOD PATH [BODY]")
	}

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		return err
	}

	api, err := client.New(
		&cfg.Client,
		client.WithLogger(logging.NewWithWriter(stderr, &cfg.Logging)),
	)
	if err != nil {
		return err
	}

	return request(ctx, api, fs.Args(), stdout)
}

func request(ctx context.Context, api *client.Client, args []string, stdout io.Writer) error {
	method := strings.ToUpper(args[0])
	path := args[1]

	var body any
	if len(args) == 3 {
		body = requestBody(args[2])
	}

	resp, err := api.Do(ctx, method, path, body)

	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		printResponse(stdout, statusErr.Response)
		return err
	}
	if err != nil {
		return err
	}

	printResponse(stdout, resp)
	return nil
}

// requestBody sends valid JSON as application/json and anything else as raw bytes.
func requestBody(arg string) any {
	if json.Valid([]byte(arg)) {
		return json.RawMessage(arg)
	}
	return []byte(arg)
}

func printResponse(w io.Writer, resp *client.Response) {
	fmt.Fprintf(w, "%d\n", resp.StatusCode)
	if len(resp.Body) > 0 {
		w.Write(resp.Body)
		if resp.Body[len(resp.Body)-1] != '\n' {
			fmt.Fprintln(w)
		}
	}
}
