package repo

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os/exec"
	"sync"

	"go.uber.org/zap"

	"sgf_review/internal/bootstrap"
	"sgf_review/internal/domain"
	apperr "sgf_review/internal/errors"
)

// EngineClient owns the analysis engine process: queries go to its stdin as
// JSON lines, per-turn responses come back on stdout and are routed to the
// requesting caller by query id. Process respawn on crash is deliberately
// not handled here.
type EngineClient struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	writer  *bufio.Writer
	scanner *bufio.Scanner
	mu      sync.Mutex
	pending sync.Map // query id -> chan domain.Response
	log     *zap.SugaredLogger
}

// NewEngineClient starts the engine in analysis mode and begins reading its
// response stream.
func NewEngineClient(cfg *bootstrap.Config, log *zap.SugaredLogger) (*EngineClient, error) {
	cmd := exec.Command(cfg.KatagoPath, "analysis", "-model", cfg.KatagoModel, "-config", cfg.KatagoConfig)

	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(stdoutPipe)
	// Response lines carry full PVs for every analyzed turn and easily
	// exceed the default token size.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	client := &EngineClient{
		cmd:     cmd,
		stdin:   stdinPipe,
		writer:  bufio.NewWriter(stdinPipe),
		scanner: scanner,
		log:     log,
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	go client.listen()

	return client, nil
}

func (c *EngineClient) listen() {
	for c.scanner.Scan() {
		line := c.scanner.Text()

		var resp domain.Response
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			c.log.Errorw("failed to unmarshal engine response", "error", err, "line", line)
			continue
		}

		if chIface, ok := c.pending.Load(resp.ID); ok {
			chIface.(chan domain.Response) <- resp
		} else {
			c.log.Warnw("no pending query for response id", "id", resp.ID)
		}
	}
}

// Analyze sends one query and collects a response record for every turn in
// its analyzeTurns. An error object from the engine is terminal and
// surfaced with its raw payload; no retry happens here.
func (c *EngineClient) Analyze(ctx context.Context, q domain.Query) ([]domain.Response, error) {
	responses, err := c.AnalyzeStream(ctx, q, nil)
	if err != nil {
		return nil, err
	}
	if len(responses) == 0 {
		return nil, &apperr.EngineError{Err: apperr.ErrEmptyEngineStream}
	}
	return responses, nil
}

// AnalyzeStream sends one query and forwards every per-turn record to emit
// as it arrives, then returns the collected stream. Used by the live
// delivery endpoint.
func (c *EngineClient) AnalyzeStream(ctx context.Context, q domain.Query, emit func(domain.Response)) ([]domain.Response, error) {
	want := len(q.AnalyzeTurns)
	responseChan := make(chan domain.Response, want)

	c.pending.Store(q.ID, responseChan)
	defer c.pending.Delete(q.ID)

	queryJSON, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	_, err = c.writer.Write(append(queryJSON, '\n'))
	if err == nil {
		err = c.writer.Flush()
	}
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	responses := make([]domain.Response, 0, want)
	for len(responses) < want {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case resp := <-responseChan:
			if resp.Error != "" {
				raw, _ := json.Marshal(resp)
				return nil, &apperr.EngineError{Payload: string(raw)}
			}
			if emit != nil {
				emit(resp)
			}
			responses = append(responses, resp)
		}
	}
	return responses, nil
}

// Close shuts the engine down by closing its stdin and waiting for exit.
func (c *EngineClient) Close() error {
	if err := c.stdin.Close(); err != nil {
		return err
	}
	return c.cmd.Wait()
}
