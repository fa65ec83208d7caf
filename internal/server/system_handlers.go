// Package server provides the HTTP server and routing for Quantfolio.
package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/quantfolio/internal/database"
	"github.com/aristath/quantfolio/internal/marketdata"
)

// SystemHandlers handles system monitoring endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	dataDir     string
	analyticsDB *database.DB
	portfolioDB *database.DB
	historyDB   *marketdata.HistoryDB
	startTime   time.Time
}

// NewSystemHandlers creates system monitoring handlers
func NewSystemHandlers(
	log zerolog.Logger,
	dataDir string,
	analyticsDB *database.DB,
	portfolioDB *database.DB,
	historyDB *marketdata.HistoryDB,
) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("component", "system_handlers").Logger(),
		dataDir:     dataDir,
		analyticsDB: analyticsDB,
		portfolioDB: portfolioDB,
		historyDB:   historyDB,
		startTime:   time.Now(),
	}
}

// SystemStatusResponse summarizes process health and data freshness
type SystemStatusResponse struct {
	Status          string  `json:"status"` // "healthy" or "degraded"
	UptimeSeconds   float64 `json:"uptime_seconds"`
	CPUPercent      float64 `json:"cpu_percent"`
	MemoryPercent   float64 `json:"memory_percent"`
	PositionCount   int     `json:"position_count"`
	SecurityCount   int     `json:"security_count"`
	HistoryTickers  int     `json:"history_tickers"`
	LatestPriceDate string  `json:"latest_price_date,omitempty"`
}

// DatabaseStatsResponse reports per-database file statistics
type DatabaseStatsResponse struct {
	Databases   []DBInfo `json:"databases"`
	TotalSizeMB float64  `json:"total_size_mb"`
	LastChecked string   `json:"last_checked"`
}

// DBInfo describes one database file
type DBInfo struct {
	Name      string  `json:"name"`
	Path      string  `json:"path"`
	SizeMB    float64 `json:"size_mb"`
	WALSizeMB float64 `json:"wal_size_mb,omitempty"`
	PageCount int64   `json:"page_count,omitempty"`
	FreePages int64   `json:"free_pages,omitempty"`
}

// DiskUsageResponse reports data directory usage
type DiskUsageResponse struct {
	DataDirMB   float64 `json:"data_dir_mb"`
	DatabasesMB float64 `json:"databases_mb"`
	SnapshotsMB float64 `json:"snapshots_mb"`
}

// GetSystemStatusSnapshot collects the current system status. Partial
// failures degrade the status instead of failing the whole response.
func (h *SystemHandlers) GetSystemStatusSnapshot() (SystemStatusResponse, error) {
	if h == nil {
		return SystemStatusResponse{}, fmt.Errorf("system handlers not initialized")
	}

	var firstErr error
	recordErr := func(err error) {
		if err != nil && err != sql.ErrNoRows && firstErr == nil {
			firstErr = err
		}
	}

	var positionCount int
	if h.portfolioDB != nil {
		err := h.portfolioDB.Conn().QueryRow(`SELECT COUNT(*) FROM positions`).Scan(&positionCount)
		if err != nil && err != sql.ErrNoRows {
			h.log.Error().Err(err).Msg("Failed to count positions")
			recordErr(err)
		}
	}

	var securityCount int
	if h.portfolioDB != nil {
		err := h.portfolioDB.Conn().QueryRow(`SELECT COUNT(*) FROM securities`).Scan(&securityCount)
		if err != nil && err != sql.ErrNoRows {
			h.log.Error().Err(err).Msg("Failed to count securities")
			recordErr(err)
		}
	}

	var historyTickers int
	var latestPriceDate string
	if h.historyDB != nil {
		tickers, err := h.historyDB.Tickers()
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to list history tickers")
			recordErr(err)
		} else {
			historyTickers = len(tickers)
		}

		latest, err := h.historyDB.LatestDate()
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to read latest price date")
			recordErr(err)
		} else {
			latestPriceDate = latest
		}
	}

	cpuPercent, memPercent := h.getSystemStats()

	status := "healthy"
	if firstErr != nil {
		status = "degraded"
	}

	response := SystemStatusResponse{
		Status:          status,
		UptimeSeconds:   time.Since(h.startTime).Seconds(),
		CPUPercent:      cpuPercent,
		MemoryPercent:   memPercent,
		PositionCount:   positionCount,
		SecurityCount:   securityCount,
		HistoryTickers:  historyTickers,
		LatestPriceDate: latestPriceDate,
	}

	return response, firstErr
}

// HandleSystemStatus returns process health and data freshness
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	response, err := h.GetSystemStatusSnapshot()
	if err != nil {
		h.log.Warn().Err(err).Msg("System status collected with warnings")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleDatabaseStats returns database statistics
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting database stats")

	databases := []DBInfo{}
	totalSizeMB := 0.0

	for _, db := range []*database.DB{h.analyticsDB, h.portfolioDB} {
		if db == nil {
			continue
		}

		info := DBInfo{Name: db.Name(), Path: db.Path()}
		stats, err := db.GetStats()
		if err != nil {
			h.log.Warn().Err(err).Str("database", db.Name()).Msg("Failed to get database stats")
		} else {
			info.SizeMB = float64(stats.SizeBytes) / 1024 / 1024
			info.WALSizeMB = float64(stats.WALSizeBytes) / 1024 / 1024
			info.PageCount = stats.PageCount
			info.FreePages = stats.FreelistCount
		}

		totalSizeMB += info.SizeMB
		databases = append(databases, info)
	}

	// The history database is opened read-only, so only its file size
	// is reported.
	historyPath := filepath.Join(h.dataDir, "history.db")
	if info, err := os.Stat(historyPath); err == nil {
		sizeMB := float64(info.Size()) / 1024 / 1024
		totalSizeMB += sizeMB
		databases = append(databases, DBInfo{Name: "history", Path: historyPath, SizeMB: sizeMB})
	}

	response := DatabaseStatsResponse{
		Databases:   databases,
		TotalSizeMB: totalSizeMB,
		LastChecked: time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleDiskUsage returns disk usage of the data directory
func (h *SystemHandlers) HandleDiskUsage(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting disk usage")

	databasesMB := 0.0
	for _, name := range []string{"analytics.db", "portfolio.db", "history.db"} {
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if info, err := os.Stat(filepath.Join(h.dataDir, name+suffix)); err == nil {
				databasesMB += float64(info.Size()) / 1024 / 1024
			}
		}
	}

	snapshotsMB := 0.0
	if info, err := os.Stat(filepath.Join(h.dataDir, "reference_snapshot.msgpack")); err == nil {
		snapshotsMB = float64(info.Size()) / 1024 / 1024
	}

	response := DiskUsageResponse{
		DataDirMB:   h.getDirSize(h.dataDir),
		DatabasesMB: databasesMB,
		SnapshotsMB: snapshotsMB,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// getDirSize calculates total size of a directory in MB
func (h *SystemHandlers) getDirSize(dirPath string) float64 {
	var totalSize int64

	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if !info.IsDir() {
			totalSize += info.Size()
		}
		return nil
	})

	if err != nil {
		h.log.Warn().Err(err).Str("dir", dirPath).Msg("Failed to calculate directory size")
		return 0
	}

	return float64(totalSize) / 1024 / 1024
}

// getSystemStats calculates CPU and RAM usage percentages
// Uses a short interval (100ms) so the status endpoint responds quickly
// while still giving a meaningful CPU reading
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
