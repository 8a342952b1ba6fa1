package out

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"runtime"
	"strings"

	trackingout "gazesim/internal/modules/tracking/port/out"
)

// ResultsNavigator moves the user to the results location. In a terminal it
// fetches the results document and prints it; with a browser it opens the URL.
type ResultsNavigator struct {
	baseURL     string
	client      *http.Client
	out         io.Writer
	openBrowser bool
}

func NewResultsNavigator(baseURL string, out io.Writer, openBrowser bool) trackingout.Navigator {
	return &ResultsNavigator{
		baseURL:     strings.TrimRight(baseURL, "/"),
		client:      http.DefaultClient,
		out:         out,
		openBrowser: openBrowser,
	}
}

func (n *ResultsNavigator) Navigate(ctx context.Context, location string) error {
	target := n.baseURL + location
	if n.openBrowser {
		return openExternal(target)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build results request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("get results: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get results: status %d", resp.StatusCode)
	}
	var doc map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("decode results: %w", err)
	}
	pretty, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	_, _ = fmt.Fprintf(n.out, "results (%s):\n%s\n", target, pretty)
	return nil
}

func openExternal(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux":
		cmd = exec.Command("xdg-open", target)
	default:
		return fmt.Errorf("external open is not supported on %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open results: %w", err)
	}
	return nil
}
