package api

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/russross/meddler"
	"github.com/stretchr/testify/require"

	"github.com/aegis-protocol/aegis-indexer/internal/db"
	"github.com/aegis-protocol/aegis-indexer/internal/logger"
	"github.com/aegis-protocol/aegis-indexer/internal/projector"
	"github.com/aegis-protocol/aegis-indexer/internal/projector/migrations"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	database, err := db.NewSQLiteDB(filepath.Join(t.TempDir(), "api_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	log := logger.NewNopLogger()
	require.NoError(t, migrations.RunMigrations(log, database))

	return NewHandler(database, log)
}

func insertJob(t *testing.T, h *Handler, jobID common.Hash, state uint8, createdAt uint64) {
	t.Helper()

	job := &projector.Job{
		JobID:         jobID,
		ClientAgentID: big.NewInt(1),
		Amount:        big.NewInt(1_000_000),
		State:         state,
		CreatedBlock:  100,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	require.NoError(t, meddler.Insert(h.db, "jobs", job))
}

func decodeList(t *testing.T, body []byte) (items []json.RawMessage, pagination PaginationResult) {
	t.Helper()

	var resp struct {
		Items      []json.RawMessage `json:"items"`
		Pagination PaginationResult  `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))

	return resp.Items, resp.Pagination
}

func TestListJobs(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)

	insertJob(t, h, common.HexToHash("0x01"), projector.JobStateFunded, 1000)
	insertJob(t, h, common.HexToHash("0x02"), projector.JobStateSettled, 2000)
	insertJob(t, h, common.HexToHash("0x03"), projector.JobStateSettled, 3000)

	t.Run("returns all jobs newest first", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
		w := httptest.NewRecorder()

		h.ListJobs(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		items, pagination := decodeList(t, w.Body.Bytes())
		require.Len(t, items, 3)
		require.Equal(t, 3, pagination.Total)
		require.False(t, pagination.HasMore)

		var first JobResponse
		require.NoError(t, json.Unmarshal(items[0], &first))
		require.Equal(t, common.HexToHash("0x03").Hex(), first.JobID)
	})

	t.Run("filters by state label", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs?state=settled", nil)
		w := httptest.NewRecorder()

		h.ListJobs(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		items, pagination := decodeList(t, w.Body.Bytes())
		require.Len(t, items, 2)
		require.Equal(t, 2, pagination.Total)
	})

	t.Run("rejects unknown state label", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs?state=bogus", nil)
		w := httptest.NewRecorder()

		h.ListJobs(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("paginates", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs?limit=2&offset=0", nil)
		w := httptest.NewRecorder()

		h.ListJobs(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		items, pagination := decodeList(t, w.Body.Bytes())
		require.Len(t, items, 2)
		require.True(t, pagination.HasMore)
	})
}

func TestGetJob(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	jobID := common.HexToHash("0xabc")
	insertJob(t, h, jobID, projector.JobStateFunded, 1000)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/jobs/{id}", h.GetJob)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+jobID.Hex(), nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var job JobResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
		require.Equal(t, jobID.Hex(), job.JobID)
		require.Equal(t, "FUNDED", job.State)
		require.Equal(t, "1000000", job.Amount)
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+common.HexToHash("0xdead").Hex(), nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListDisputes(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)

	open := &projector.Dispute{
		DisputeID: common.HexToHash("0x10"),
		JobID:     common.HexToHash("0x01"),
		Initiator: common.HexToAddress("0x1111111111111111111111111111111111111111"),
		CreatedAt: 1000,
	}
	require.NoError(t, meddler.Insert(h.db, "disputes", open))

	arb := common.HexToAddress("0x2222222222222222222222222222222222222222")
	closed := &projector.Dispute{
		DisputeID:     common.HexToHash("0x11"),
		JobID:         common.HexToHash("0x02"),
		Initiator:     common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Arbitrator:    &arb,
		Resolved:      true,
		Method:        projector.ResolutionArbitrator,
		ClientPercent: 40,
		CreatedAt:     2000,
		ResolvedAt:    3000,
	}
	require.NoError(t, meddler.Insert(h.db, "disputes", closed))

	t.Run("filters resolved", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/disputes?resolved=true", nil)
		w := httptest.NewRecorder()

		h.ListDisputes(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		items, _ := decodeList(t, w.Body.Bytes())
		require.Len(t, items, 1)

		var dispute DisputeResponse
		require.NoError(t, json.Unmarshal(items[0], &dispute))
		require.Equal(t, common.HexToHash("0x11").Hex(), dispute.DisputeID)
		require.Equal(t, arb.Hex(), dispute.Arbitrator)
		require.Equal(t, uint8(40), dispute.ClientPercent)
	})

	t.Run("rejects non boolean filter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/disputes?resolved=maybe", nil)
		w := httptest.NewRecorder()

		h.ListDisputes(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetStats(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)

	t.Run("empty database returns zero stats", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
		w := httptest.NewRecorder()

		h.GetStats(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var stats StatsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		require.Zero(t, stats.TotalJobs)
		require.Equal(t, "0", stats.TotalVolume)
	})

	t.Run("returns projected aggregates", func(t *testing.T) {
		stats := &projector.ProtocolStats{
			TotalJobs:          7,
			TotalSettled:       4,
			TotalVolume:        big.NewInt(9_000_000),
			TotalFeesCollected: big.NewInt(225_000),
			TotalRefundAmount:  big.NewInt(0),
			TotalStaked:        big.NewInt(0),
		}
		require.NoError(t, meddler.Insert(h.db, "protocol_stats", stats))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
		w := httptest.NewRecorder()

		h.GetStats(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var got StatsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Equal(t, uint64(7), got.TotalJobs)
		require.Equal(t, "9000000", got.TotalVolume)
	})
}

func TestGetDailyStats(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)

	for day := uint64(20100); day <= 20102; day++ {
		daily := &projector.DailyStats{
			Day:           day,
			JobsCreated:   day - 20099,
			Volume:        big.NewInt(int64(day)),
			FeesCollected: big.NewInt(0),
		}
		require.NoError(t, meddler.Insert(h.db, "daily_stats", daily))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/daily?days=2", nil)
	w := httptest.NewRecorder()

	h.GetDailyStats(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var daily []DailyStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &daily))
	require.Len(t, daily, 2)
	require.Equal(t, uint64(20102), daily[0].Day)
	require.Equal(t, "2025-01-14", daily[0].Date)
}

func TestListAuditEvents(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)

	events := []*projector.AuditEvent{
		{EventID: "0xaa-0", BlockNumber: 100, TxHash: common.HexToHash("0xaa"), Kind: "JobCreated", Payload: "{}"},
		{EventID: "0xbb-0", BlockNumber: 110, TxHash: common.HexToHash("0xbb"), Kind: "JobSettled", Payload: "{}"},
		{EventID: "0xcc-0", BlockNumber: 120, TxHash: common.HexToHash("0xcc"), Kind: "JobCreated", Payload: "{}"},
	}
	for _, ev := range events {
		require.NoError(t, meddler.Insert(h.db, "audit_events", ev))
	}

	t.Run("filters by kind", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/audit?kind=JobCreated", nil)
		w := httptest.NewRecorder()

		h.ListAuditEvents(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		items, pagination := decodeList(t, w.Body.Bytes())
		require.Len(t, items, 2)
		require.Equal(t, 2, pagination.Total)
	})

	t.Run("filters by block range", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/audit?from_block=105&to_block=115", nil)
		w := httptest.NewRecorder()

		h.ListAuditEvents(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		items, _ := decodeList(t, w.Body.Bytes())
		require.Len(t, items, 1)

		var ev AuditEventResponse
		require.NoError(t, json.Unmarshal(items[0], &ev))
		require.Equal(t, "JobSettled", ev.Kind)
	})

	t.Run("rejects malformed block filter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/audit?from_block=abc", nil)
		w := httptest.NewRecorder()

		h.ListAuditEvents(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListAgents(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)

	agent := &projector.AgentReputation{
		AgentID:       big.NewInt(42),
		Score:         big.NewInt(-3),
		FeedbackCount: 5,
	}
	require.NoError(t, meddler.Insert(h.db, "agent_reputation", agent))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/agents", nil)
	w := httptest.NewRecorder()

	h.ListAgents(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	items, _ := decodeList(t, w.Body.Bytes())
	require.Len(t, items, 1)

	var got AgentReputationResponse
	require.NoError(t, json.Unmarshal(items[0], &got))
	require.Equal(t, "42", got.AgentID)
	require.Equal(t, "-3", got.Score)
	require.Equal(t, uint64(5), got.FeedbackCount)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)

	ev := &projector.AuditEvent{
		EventID: "0xaa-0", BlockNumber: 500, TxHash: common.HexToHash("0xaa"), Kind: "JobCreated", Payload: "{}",
	}
	require.NoError(t, meddler.Insert(h.db, "audit_events", ev))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	h.Health(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	require.Equal(t, "ok", health.Status)
	require.Equal(t, uint64(500), health.LastBlock)
	require.Equal(t, int64(1), health.AuditEventRows)
}
