package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/quantfolio/internal/events"
	"github.com/aristath/quantfolio/internal/modules/universe"
	"github.com/aristath/quantfolio/internal/utils"
)

// defaultTopN caps ranking output when the caller does not say how many.
const defaultTopN = 10

// defaultBalancedSectors is the sector set for the sector-balanced list.
var defaultBalancedSectors = []string{
	"Technology",
	"Healthcare",
	"Financial Services",
	"Consumer Cyclical",
	"Industrials",
}

// RankRequest is one screening call.
type RankRequest struct {
	Style          string `json:"style"`
	Sector         string `json:"sector,omitempty"`
	TopN           int    `json:"top_n,omitempty"`
	ExcludeFlagged bool   `json:"exclude_flagged,omitempty"`
}

// RankResponse is the ranked output of one screening call.
type RankResponse struct {
	RequestID string           `json:"request_id"`
	Style     string           `json:"style"`
	Sector    string           `json:"sector,omitempty"`
	Scored    int              `json:"scored"`
	Ranked    []RankedSecurity `json:"ranked"`
}

// ScreenerService orchestrates scoring and ranking over the stored
// screener universe.
type ScreenerService struct {
	securityRepo    *universe.SecurityRepository
	cache           *ReferenceCache
	minSectorSize   int
	balancedSectors []string
	bus             *events.Bus
	log             zerolog.Logger
	now             func() time.Time
}

// NewScreenerService creates a screener service. The cache and bus may
// be nil; both degrade gracefully.
func NewScreenerService(
	securityRepo *universe.SecurityRepository,
	cache *ReferenceCache,
	minSectorSize int,
	balancedSectors []string,
	bus *events.Bus,
	log zerolog.Logger,
) *ScreenerService {
	if len(balancedSectors) == 0 {
		balancedSectors = defaultBalancedSectors
	}
	return &ScreenerService{
		securityRepo:    securityRepo,
		cache:           cache,
		minSectorSize:   minSectorSize,
		balancedSectors: balancedSectors,
		bus:             bus,
		log:             log.With().Str("service", "screener").Logger(),
		now:             time.Now,
	}
}

// Rank scores the whole universe and ranks it by style.
func (s *ScreenerService) Rank(req RankRequest) (*RankResponse, error) {
	defer utils.OperationTimer("screener_rank", s.log)()

	// Reject unknown styles before doing any work
	if _, err := Profile(req.Style); err != nil {
		return nil, err
	}
	if req.TopN <= 0 {
		req.TopN = defaultTopN
	}

	scored, refs, err := s.scoreUniverse(req.ExcludeFlagged)
	if err != nil {
		return nil, err
	}

	ranked, err := RankByStyle(scored, req.Style, req.Sector, req.TopN)
	if err != nil {
		return nil, err
	}

	response := &RankResponse{
		RequestID: uuid.New().String(),
		Style:     strings.ToLower(strings.TrimSpace(req.Style)),
		Sector:    req.Sector,
		Scored:    len(scored),
		Ranked:    ranked,
	}

	s.publishCompleted(response)

	s.log.Info().
		Str("request_id", response.RequestID).
		Str("style", response.Style).
		Str("sector", req.Sector).
		Int("scored", response.Scored).
		Int("ranked", len(ranked)).
		Int("reference_sectors", len(refs.Sectors)).
		Msg("Screening completed")

	return response, nil
}

// SectorBalanced ranks the balanced style within each configured sector
// and keeps the top two per sector, in sector order.
func (s *ScreenerService) SectorBalanced() (*RankResponse, error) {
	defer utils.OperationTimer("screener_sector_balanced", s.log)()

	scored, _, err := s.scoreUniverse(false)
	if err != nil {
		return nil, err
	}

	var ranked []RankedSecurity
	for _, sector := range s.balancedSectors {
		rows, err := RankByStyle(scored, StyleBalanced, sector, 2)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, rows...)
	}

	response := &RankResponse{
		RequestID: uuid.New().String(),
		Style:     StyleBalanced,
		Scored:    len(scored),
		Ranked:    ranked,
	}

	s.publishCompleted(response)

	s.log.Info().
		Str("request_id", response.RequestID).
		Int("scored", response.Scored).
		Int("ranked", len(ranked)).
		Strs("sectors", s.balancedSectors).
		Msg("Sector-balanced screening completed")

	return response, nil
}

// Styles describes the configured style profiles.
func (s *ScreenerService) Styles() []StyleProfile {
	styles := make([]StyleProfile, 0, len(StyleNames()))
	for _, name := range StyleNames() {
		profile, _ := Profile(name)
		styles = append(styles, profile)
	}
	return styles
}

// scoreUniverse loads the universe, resolves today's references, and
// scores every security that has fundamentals.
func (s *ScreenerService) scoreUniverse(excludeFlagged bool) ([]FactorScoreRecord, *References, error) {
	securities, err := s.securityRepo.GetAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load screener universe: %w", err)
	}
	if len(securities) == 0 {
		return nil, nil, fmt.Errorf("screener universe is empty")
	}

	refs := s.references(securities)

	scored := make([]FactorScoreRecord, 0, len(securities))
	for _, sec := range securities {
		if !HasFundamentals(sec.Fundamentals) {
			s.log.Debug().Str("ticker", sec.Ticker).Msg("Excluding security without fundamentals")
			continue
		}

		record := ScoreSecurity(sec, refs)

		if excludeFlagged && len(record.Flags) > 0 {
			s.log.Debug().
				Str("ticker", sec.Ticker).
				Strs("flags", record.Flags).
				Msg("Excluding flagged security")
			continue
		}

		scored = append(scored, record)
	}

	return scored, refs, nil
}

// references returns today's reference distributions, loading the
// msgpack snapshot when fresh and rebuilding otherwise.
func (s *ScreenerService) references(securities []universe.Security) *References {
	today := s.now().Format("2006-01-02")

	if s.cache != nil {
		if refs := s.cache.Load(today); refs != nil {
			return refs
		}
	}

	refs := BuildReferences(securities, s.minSectorSize, today)

	if s.cache != nil {
		s.cache.Save(refs)
	}

	return refs
}

func (s *ScreenerService) publishCompleted(response *RankResponse) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(&events.ScreeningCompletedData{
		RequestID: response.RequestID,
		Style:     response.Style,
		Scored:    response.Scored,
		Ranked:    len(response.Ranked),
	})
}
