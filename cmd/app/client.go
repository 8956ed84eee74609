package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	transportUDS  = "uds"
	transportHTTP = "http"

	defaultServer = "http://127.0.0.1:8080"
	defaultSocket = "/tmp/pantry.sock"
)

// cliConfig holds how client commands reach a running server.
type cliConfig struct {
	Transport string `json:"transport"`
	Server    string `json:"server"`
	Socket    string `json:"socket"`
}

type apiClient struct {
	httpClient *http.Client
	server     string
}

func newAPIClient(server string) *apiClient {
	return &apiClient{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		server:     strings.TrimRight(server, "/"),
	}
}

func (c *apiClient) request(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.server+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("api error (%d): %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pantry", "config.json"), nil
}

func defaultCLIConfig() cliConfig {
	return cliConfig{Transport: transportUDS, Server: defaultServer, Socket: defaultSocket}
}

func loadConfig() (cliConfig, error) {
	path, err := configPath()
	if err != nil {
		return cliConfig{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultCLIConfig(), nil
		}
		return cliConfig{}, err
	}
	var cfg cliConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cliConfig{}, err
	}
	return cfg.withDefaults(), nil
}

func (c cliConfig) withDefaults() cliConfig {
	def := defaultCLIConfig()
	if c.Transport == "" {
		c.Transport = def.Transport
	}
	if c.Server == "" {
		c.Server = def.Server
	}
	if c.Socket == "" {
		c.Socket = def.Socket
	}
	return c
}

func (c cliConfig) validate() error {
	switch c.Transport {
	case transportUDS, transportHTTP:
		return nil
	}
	return fmt.Errorf("unknown transport %q (want %s or %s)", c.Transport, transportUDS, transportHTTP)
}

func saveConfig(cfg cliConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
