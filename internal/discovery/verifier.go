package discovery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/benmeehan/pc-monitor/internal/constants"
	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/benmeehan/pc-monitor/internal/utils"
	"github.com/benmeehan/pc-monitor/pkg/serialport"
	"github.com/rs/zerolog"
)

var (
	// ErrNoDeviceVerified is returned when every candidate failed the handshake.
	ErrNoDeviceVerified = errors.New("no device answered the identification request")
	// ErrNoResponse is returned by a probe whose verification window expired.
	ErrNoResponse = errors.New("no identification response")
)

// Rejection records why a candidate failed verification.
type Rejection struct {
	Candidate models.CandidatePort
	Err       error
}

// VerificationError lists every rejected candidate. It unwraps to ErrNoDeviceVerified.
type VerificationError struct {
	Rejections []Rejection
}

func (e *VerificationError) Error() string {
	parts := make([]string, 0, len(e.Rejections))
	for _, r := range e.Rejections {
		parts = append(parts, fmt.Sprintf("%s: %v", r.Candidate.Name, r.Err))
	}
	return fmt.Sprintf("%v (%s)", ErrNoDeviceVerified, strings.Join(parts, "; "))
}

func (e *VerificationError) Unwrap() error {
	return ErrNoDeviceVerified
}

// ProbeRecorder is notified of every probe outcome. err is nil on success.
type ProbeRecorder interface {
	RecordProbe(port string, err error)
}

// VerifierConfig holds the handshake timing.
type VerifierConfig struct {
	BaudRate     int
	BootDelay    time.Duration // wait after open, the board may reset on connect
	Window       time.Duration // how long to wait for the response
	PollInterval time.Duration // pause between empty reads
	ReadTimeout  time.Duration
	Challenge    string
	Expected     string
}

// DefaultVerifierConfig returns the handshake settings the display firmware expects.
func DefaultVerifierConfig() VerifierConfig {
	return VerifierConfig{
		BaudRate:     constants.DefaultBaudRate,
		BootDelay:    constants.DefaultBootDelay,
		Window:       constants.DefaultVerifyTimeout,
		PollInterval: constants.DefaultPollInterval,
		ReadTimeout:  constants.DefaultReadTimeout,
		Challenge:    constants.IdentifyRequest,
		Expected:     constants.IdentifyResponse,
	}
}

// Verifier runs the challenge/response handshake against ranked candidates.
type Verifier struct {
	opener   serialport.Opener
	config   VerifierConfig
	recorder ProbeRecorder
	logger   zerolog.Logger
}

// NewVerifier creates a Verifier. recorder may be nil.
func NewVerifier(opener serialport.Opener, config VerifierConfig, recorder ProbeRecorder, logger zerolog.Logger) *Verifier {
	if config.Challenge == "" {
		config.Challenge = constants.IdentifyRequest
	}
	if config.Expected == "" {
		config.Expected = constants.IdentifyResponse
	}
	// A zero read timeout makes the serial read block forever.
	if config.ReadTimeout <= 0 {
		config.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Window > 0 && config.ReadTimeout > config.Window {
		config.ReadTimeout = config.Window
	}
	return &Verifier{
		opener:   opener,
		config:   config,
		recorder: recorder,
		logger:   logger,
	}
}

// Verify probes candidates one at a time in descending priority order and returns
// the first that answers. The probe connection is always closed before returning.
func (v *Verifier) Verify(ctx context.Context, candidates []models.CandidatePort) (models.CandidatePort, error) {
	ordered := make([]models.CandidatePort, len(candidates))
	copy(ordered, candidates)
	sortByPriority(ordered)

	verr := &VerificationError{}
	for _, c := range ordered {
		v.logger.Info().Str("port", c.Name).Str("description", c.Description).Msg("Probing candidate")

		err := v.Probe(ctx, c)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.CandidatePort{}, ctxErr
		}
		if v.recorder != nil {
			v.recorder.RecordProbe(c.Name, err)
		}
		if err == nil {
			v.logger.Info().Str("port", c.Name).Msg("Display identified")
			return c, nil
		}

		v.logger.Warn().Err(err).Str("port", c.Name).Msg("Candidate rejected")
		verr.Rejections = append(verr.Rejections, Rejection{Candidate: c, Err: err})
	}
	return models.CandidatePort{}, verr
}

// Probe opens the candidate, sends the challenge and waits for the expected reply.
func (v *Verifier) Probe(ctx context.Context, c models.CandidatePort) error {
	port, err := v.opener.Open(c.Name, v.config.BaudRate, v.config.ReadTimeout)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.Name, err)
	}
	defer port.Close()

	if err := utils.Sleep(ctx, v.config.BootDelay); err != nil {
		return err
	}

	if err := port.Flush(); err != nil {
		return fmt.Errorf("failed to clear buffers: %w", err)
	}
	if _, err := port.Write([]byte(v.config.Challenge)); err != nil {
		return fmt.Errorf("failed to send challenge: %w", err)
	}

	var received []byte
	chunk := make([]byte, 256)
	deadline := time.Now().Add(v.config.Window)
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := port.Read(chunk)
		if n > 0 {
			received = append(received, chunk[:n]...)
			if strings.Contains(decode(received), v.config.Expected) {
				return nil
			}
		}
		// tarm/serial reports a read timeout as io.EOF on POSIX.
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read failed: %w", err)
		}
		if n == 0 {
			if err := utils.Sleep(ctx, v.config.PollInterval); err != nil {
				return err
			}
		}
	}

	return fmt.Errorf("%w (received %q)", ErrNoResponse, truncate(decode(received), 50))
}

// decode drops invalid UTF-8 instead of failing.
func decode(b []byte) string {
	return strings.ToValidUTF8(string(b), "")
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
