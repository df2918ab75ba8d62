// Package discovery locates the display among the host's USB-serial adapters.
package discovery

import (
	"errors"
	"sort"
	"strings"

	"github.com/benmeehan/pc-monitor/internal/constants"
	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/benmeehan/pc-monitor/pkg/serialport"
	"github.com/rs/zerolog"
)

// ErrNoCandidates is returned when no enumerated port matches a known signature.
var ErrNoCandidates = errors.New("no matching serial device found")

// Signature identifies a USB-serial bridge either by exact VID:PID or by a
// case-insensitive substring of the port description.
type Signature struct {
	VID       string
	PID       string
	Substring string
}

// Score returns the signature's score for p and whether it matched.
func (s Signature) Score(p serialport.PortInfo) (int, bool) {
	if s.VID != "" || s.PID != "" {
		if p.VID == "" || p.PID == "" {
			return 0, false
		}
		if strings.EqualFold(p.VID, s.VID) && strings.EqualFold(p.PID, s.PID) {
			return constants.ScoreUSBID, true
		}
		return 0, false
	}
	if s.Substring != "" && strings.Contains(strings.ToLower(p.Description), strings.ToLower(s.Substring)) {
		return constants.ScoreDescription, true
	}
	return 0, false
}

// DefaultSignatures covers the bridge chips found on common ESP32 boards.
// Order matters: the first matching entry decides the score.
var DefaultSignatures = []Signature{
	{VID: "1A86", PID: "7523"}, // CH340
	{Substring: "CH340"},
	{Substring: "CH341"},
	{VID: "10C4", PID: "EA60"}, // CP210x
	{Substring: "CP2102"},
	{Substring: "CP2104"},
	{Substring: "CP210"},
	{Substring: "Silicon Labs"},
	{VID: "0403", PID: "6001"}, // FT232
	{Substring: "FT232"},
	{Substring: "FTDI"},
	{Substring: "USB JTAG"}, // native USB on S2/S3/C3
	{Substring: "ESP32"},
}

// Scanner filters and ranks enumerated ports against a signature table.
type Scanner struct {
	signatures []Signature
	logger     zerolog.Logger
}

// NewScanner creates a Scanner. A nil table selects DefaultSignatures.
func NewScanner(signatures []Signature, logger zerolog.Logger) *Scanner {
	if signatures == nil {
		signatures = DefaultSignatures
	}
	return &Scanner{signatures: signatures, logger: logger}
}

// Scan returns the ports matching a signature, highest score first.
// Ports with equal scores keep their enumeration order.
func (s *Scanner) Scan(ports []serialport.PortInfo) []models.CandidatePort {
	candidates := make([]models.CandidatePort, 0, len(ports))
	for _, p := range ports {
		for _, sig := range s.signatures {
			score, ok := sig.Score(p)
			if !ok {
				continue
			}
			candidates = append(candidates, models.CandidatePort{
				Name:        p.Name,
				Description: p.Description,
				VID:         p.VID,
				PID:         p.PID,
				Priority:    score,
			})
			s.logger.Debug().Str("port", p.Name).Int("score", score).Msg("Port matched signature")
			break
		}
	}

	sortByPriority(candidates)
	return candidates
}

func sortByPriority(candidates []models.CandidatePort) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})
}
