package discovery

import (
	"context"
	"errors"
	"fmt"

	"github.com/benmeehan/pc-monitor/internal/constants"
	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/benmeehan/pc-monitor/pkg/serialport"
	"github.com/rs/zerolog"
)

// Resolution is the port the session should open and how it was chosen.
type Resolution struct {
	Port     models.CandidatePort
	Verified bool // answered the handshake
	Override bool // given explicitly by the operator
}

// Resolver applies the discovery policy: explicit override, then scan and verify,
// then optionally the best unverified candidate.
type Resolver struct {
	lister          serialport.Lister
	scanner         *Scanner
	verifier        *Verifier
	allowUnverified bool
	logger          zerolog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(lister serialport.Lister, scanner *Scanner, verifier *Verifier, allowUnverified bool, logger zerolog.Logger) *Resolver {
	return &Resolver{
		lister:          lister,
		scanner:         scanner,
		verifier:        verifier,
		allowUnverified: allowUnverified,
		logger:          logger,
	}
}

// Resolve picks the display port. override may be empty or "auto" to run discovery.
func (r *Resolver) Resolve(ctx context.Context, override string) (Resolution, error) {
	if override != "" && override != constants.AutoDetectPort {
		r.logger.Info().Str("port", override).Msg("Using port override, skipping discovery")
		return Resolution{Port: models.CandidatePort{Name: override}, Override: true}, nil
	}

	ports, err := r.lister.List()
	if err != nil {
		return Resolution{}, err
	}

	candidates := r.scanner.Scan(ports)
	if len(candidates) == 0 {
		return Resolution{}, ErrNoCandidates
	}
	r.logger.Info().Int("candidates", len(candidates)).Msg("Possible display devices found")

	verified, err := r.verifier.Verify(ctx, candidates)
	if err == nil {
		r.logger.Info().Str("port", verified.Name).Str("usb_id", usbID(verified)).Msg("Display verified")
		return Resolution{Port: verified, Verified: true}, nil
	}
	if !errors.Is(err, ErrNoDeviceVerified) {
		return Resolution{}, err
	}

	if !r.allowUnverified {
		return Resolution{}, err
	}

	best := candidates[0]
	r.logger.Warn().
		Str("port", best.Name).
		Str("description", best.Description).
		Str("usb_id", usbID(best)).
		Msg("No device verified, continuing with best unverified candidate; pass --port to override")
	return Resolution{Port: best}, nil
}

func usbID(c models.CandidatePort) string {
	if !c.HasUSBID() {
		return "unknown"
	}
	return c.USBID()
}

// String describes how the port was chosen.
func (r Resolution) String() string {
	switch {
	case r.Override:
		return fmt.Sprintf("%s (override)", r.Port.Name)
	case r.Verified:
		return fmt.Sprintf("%s (verified)", r.Port.Name)
	default:
		return fmt.Sprintf("%s (unverified)", r.Port.Name)
	}
}
