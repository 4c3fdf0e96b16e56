package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/russross/meddler"

	"github.com/aegis-protocol/aegis-indexer/internal/logger"
	"github.com/aegis-protocol/aegis-indexer/internal/projector"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Handler handles HTTP requests for the API.
type Handler struct {
	db  *sql.DB
	log *logger.Logger
}

// NewHandler creates a new API handler over the projection database.
func NewHandler(database *sql.DB, log *logger.Logger) *Handler {
	return &Handler{
		db:  database,
		log: log,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: status})
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit = defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = min(v, maxLimit)
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}

	return limit, offset
}

// jobStateFromLabel maps a display label back to its numeric state.
func jobStateFromLabel(label string) (uint8, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	for state := uint8(0); state <= projector.JobStateCancelled; state++ {
		if projector.JobStateLabel(state) == label {
			return state, true
		}
	}

	return 0, false
}

// Health reports indexer liveness and basic progress.
// @Summary Health check
// @Description Reports the indexer status, the last projected block and the audit trail size
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "Health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	var lastBlock sql.NullInt64
	_ = h.db.QueryRow("SELECT MAX(block_number) FROM audit_events").Scan(&lastBlock)

	var rows int64
	_ = h.db.QueryRow("SELECT COUNT(*) FROM audit_events").Scan(&rows)

	respondJSON(w, http.StatusOK, HealthResponse{
		Status:         "ok",
		Timestamp:      time.Now().UTC(),
		LastBlock:      uint64(lastBlock.Int64),
		AuditEventRows: rows,
	})
}

// ListJobs returns projected jobs with optional state filtering.
// @Summary List jobs
// @Description Retrieve projected jobs with optional state filtering and pagination
// @Tags Jobs
// @Produce json
// @Param state query string false "Job state label (e.g. FUNDED, SETTLED)"
// @Param limit query int false "Maximum number of jobs to return" default(100)
// @Param offset query int false "Number of jobs to skip" default(0)
// @Success 200 {object} ListResponse "List of jobs with pagination info"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /jobs [get]
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	where := ""
	args := []interface{}{}
	if label := r.URL.Query().Get("state"); label != "" {
		state, ok := jobStateFromLabel(label)
		if !ok {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown job state %q", label))
			return
		}
		where = " WHERE state = ?"
		args = append(args, state)
	}

	var total int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM jobs"+where, args...).Scan(&total); err != nil {
		h.log.Errorf("failed to count jobs: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query jobs")
		return
	}

	var jobs []*projector.Job
	query := "SELECT * FROM jobs" + where + " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	if err := meddler.QueryAll(h.db, &jobs, query, append(args, limit, offset)...); err != nil {
		h.log.Errorf("failed to query jobs: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query jobs")
		return
	}

	items := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, toJobResponse(job))
	}

	respondJSON(w, http.StatusOK, ListResponse{
		Items: items,
		Pagination: PaginationResult{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
		},
	})
}

// GetJob returns one job by its identifier.
// @Summary Get a job
// @Description Retrieve a single job by its 32-byte identifier
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID (0x-prefixed 32-byte hex)"
// @Success 200 {object} JobResponse "Job"
// @Failure 404 {object} ErrorResponse "Job not found"
// @Router /jobs/{id} [get]
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := common.HexToHash(r.PathValue("id"))

	job := &projector.Job{}
	err := meddler.QueryRow(h.db, job, "SELECT * FROM jobs WHERE job_id = ?", jobID.Hex())
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}
	if err != nil {
		h.log.Errorf("failed to query job: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query job")
		return
	}

	respondJSON(w, http.StatusOK, toJobResponse(job))
}

// ListDisputes returns projected disputes.
// @Summary List disputes
// @Description Retrieve projected disputes with optional resolved filtering and pagination
// @Tags Disputes
// @Produce json
// @Param resolved query bool false "Filter by resolution status"
// @Param limit query int false "Maximum number of disputes to return" default(100)
// @Param offset query int false "Number of disputes to skip" default(0)
// @Success 200 {object} ListResponse "List of disputes with pagination info"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /disputes [get]
func (h *Handler) ListDisputes(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	where := ""
	args := []interface{}{}
	if raw := r.URL.Query().Get("resolved"); raw != "" {
		resolved, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "resolved must be a boolean")
			return
		}
		where = " WHERE resolved = ?"
		args = append(args, resolved)
	}

	var total int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM disputes"+where, args...).Scan(&total); err != nil {
		h.log.Errorf("failed to count disputes: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query disputes")
		return
	}

	var disputes []*projector.Dispute
	query := "SELECT * FROM disputes" + where + " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	if err := meddler.QueryAll(h.db, &disputes, query, append(args, limit, offset)...); err != nil {
		h.log.Errorf("failed to query disputes: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query disputes")
		return
	}

	items := make([]DisputeResponse, 0, len(disputes))
	for _, dispute := range disputes {
		items = append(items, toDisputeResponse(dispute))
	}

	respondJSON(w, http.StatusOK, ListResponse{
		Items: items,
		Pagination: PaginationResult{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
		},
	})
}

// GetDispute returns one dispute by its identifier.
// @Summary Get a dispute
// @Description Retrieve a single dispute by its 32-byte identifier
// @Tags Disputes
// @Produce json
// @Param id path string true "Dispute ID (0x-prefixed 32-byte hex)"
// @Success 200 {object} DisputeResponse "Dispute"
// @Failure 404 {object} ErrorResponse "Dispute not found"
// @Router /disputes/{id} [get]
func (h *Handler) GetDispute(w http.ResponseWriter, r *http.Request) {
	disputeID := common.HexToHash(r.PathValue("id"))

	dispute := &projector.Dispute{}
	err := meddler.QueryRow(h.db, dispute, "SELECT * FROM disputes WHERE dispute_id = ?", disputeID.Hex())
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "dispute not found")
		return
	}
	if err != nil {
		h.log.Errorf("failed to query dispute: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query dispute")
		return
	}

	respondJSON(w, http.StatusOK, toDisputeResponse(dispute))
}

// ListTemplates returns projected job templates.
// @Summary List job templates
// @Description Retrieve projected job templates with pagination
// @Tags Templates
// @Produce json
// @Param active query bool false "Filter by active status"
// @Param limit query int false "Maximum number of templates to return" default(100)
// @Param offset query int false "Number of templates to skip" default(0)
// @Success 200 {object} ListResponse "List of templates with pagination info"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /templates [get]
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	where := ""
	args := []interface{}{}
	if raw := r.URL.Query().Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "active must be a boolean")
			return
		}
		where = " WHERE active = ?"
		args = append(args, active)
	}

	var total int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM job_templates"+where, args...).Scan(&total); err != nil {
		h.log.Errorf("failed to count templates: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query templates")
		return
	}

	var templates []*projector.JobTemplate
	query := "SELECT * FROM job_templates" + where + " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	if err := meddler.QueryAll(h.db, &templates, query, append(args, limit, offset)...); err != nil {
		h.log.Errorf("failed to query templates: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query templates")
		return
	}

	items := make([]TemplateResponse, 0, len(templates))
	for _, template := range templates {
		items = append(items, toTemplateResponse(template))
	}

	respondJSON(w, http.StatusOK, ListResponse{
		Items: items,
		Pagination: PaginationResult{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
		},
	})
}

// ListArbitrators returns projected arbitrators ordered by stake.
// @Summary List arbitrators
// @Description Retrieve projected arbitrators ordered by stake, descending
// @Tags Arbitrators
// @Produce json
// @Param limit query int false "Maximum number of arbitrators to return" default(100)
// @Param offset query int false "Number of arbitrators to skip" default(0)
// @Success 200 {object} ListResponse "List of arbitrators with pagination info"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /arbitrators [get]
func (h *Handler) ListArbitrators(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	var total int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM arbitrators").Scan(&total); err != nil {
		h.log.Errorf("failed to count arbitrators: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query arbitrators")
		return
	}

	var arbitrators []*projector.Arbitrator
	// Stake is stored as decimal TEXT; CAST keeps ordering numeric.
	query := "SELECT * FROM arbitrators ORDER BY CAST(staked AS REAL) DESC, id ASC LIMIT ? OFFSET ?"
	if err := meddler.QueryAll(h.db, &arbitrators, query, limit, offset); err != nil {
		h.log.Errorf("failed to query arbitrators: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query arbitrators")
		return
	}

	items := make([]ArbitratorResponse, 0, len(arbitrators))
	for _, arb := range arbitrators {
		items = append(items, toArbitratorResponse(arb))
	}

	respondJSON(w, http.StatusOK, ListResponse{
		Items: items,
		Pagination: PaginationResult{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
		},
	})
}

// ListAgents returns agent feedback aggregates.
// @Summary List agent reputation
// @Description Retrieve per-agent feedback aggregates ordered by feedback count, descending
// @Tags Agents
// @Produce json
// @Param limit query int false "Maximum number of agents to return" default(100)
// @Param offset query int false "Number of agents to skip" default(0)
// @Success 200 {object} ListResponse "List of agent reputations with pagination info"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /agents [get]
func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	var total int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM agent_reputation").Scan(&total); err != nil {
		h.log.Errorf("failed to count agents: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query agents")
		return
	}

	var agents []*projector.AgentReputation
	query := "SELECT * FROM agent_reputation ORDER BY feedback_count DESC, id ASC LIMIT ? OFFSET ?"
	if err := meddler.QueryAll(h.db, &agents, query, limit, offset); err != nil {
		h.log.Errorf("failed to query agents: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query agents")
		return
	}

	items := make([]AgentReputationResponse, 0, len(agents))
	for _, agent := range agents {
		items = append(items, toAgentReputationResponse(agent))
	}

	respondJSON(w, http.StatusOK, ListResponse{
		Items: items,
		Pagination: PaginationResult{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
		},
	})
}

// GetStats returns the protocol-wide aggregates.
// @Summary Get protocol statistics
// @Description Retrieve the protocol-wide aggregate counters and amounts
// @Tags Stats
// @Produce json
// @Success 200 {object} StatsResponse "Protocol statistics"
// @Router /stats [get]
func (h *Handler) GetStats(w http.ResponseWriter, _ *http.Request) {
	stats := &projector.ProtocolStats{}
	err := meddler.QueryRow(h.db, stats, "SELECT * FROM protocol_stats WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		// No events projected yet.
		respondJSON(w, http.StatusOK, StatsResponse{
			TotalVolume: "0", TotalFeesCollected: "0", TotalRefundAmount: "0", TotalStaked: "0",
		})
		return
	}
	if err != nil {
		h.log.Errorf("failed to query stats: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query stats")
		return
	}

	respondJSON(w, http.StatusOK, toStatsResponse(stats))
}

// GetDailyStats returns recent per-day aggregates.
// @Summary Get daily statistics
// @Description Retrieve per-day aggregate activity, newest first
// @Tags Stats
// @Produce json
// @Param days query int false "Number of days to return" default(30)
// @Success 200 {array} DailyStatsResponse "Daily statistics"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /stats/daily [get]
func (h *Handler) GetDailyStats(w http.ResponseWriter, r *http.Request) {
	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			days = min(v, 365)
		}
	}

	var daily []*projector.DailyStats
	query := "SELECT * FROM daily_stats ORDER BY day DESC LIMIT ?"
	if err := meddler.QueryAll(h.db, &daily, query, days); err != nil {
		h.log.Errorf("failed to query daily stats: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query daily stats")
		return
	}

	items := make([]DailyStatsResponse, 0, len(daily))
	for _, d := range daily {
		items = append(items, toDailyStatsResponse(d))
	}

	respondJSON(w, http.StatusOK, items)
}

// ListAuditEvents returns the decoded event audit trail.
// @Summary List audit events
// @Description Retrieve decoded events from the append-only audit trail with filtering and pagination
// @Tags Audit
// @Produce json
// @Param kind query string false "Event kind to filter by (e.g. JobCreated)"
// @Param from_block query integer false "Filter events from this block number"
// @Param to_block query integer false "Filter events up to this block number"
// @Param limit query int false "Maximum number of events to return" default(100)
// @Param offset query int false "Number of events to skip" default(0)
// @Success 200 {object} ListResponse "List of audit events with pagination info"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /audit [get]
func (h *Handler) ListAuditEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	var clauses []string
	var args []interface{}

	if kind := r.URL.Query().Get("kind"); kind != "" {
		clauses = append(clauses, "kind = ?")
		args = append(args, kind)
	}
	if raw := r.URL.Query().Get("from_block"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "from_block must be a block number")
			return
		}
		clauses = append(clauses, "block_number >= ?")
		args = append(args, v)
	}
	if raw := r.URL.Query().Get("to_block"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "to_block must be a block number")
			return
		}
		clauses = append(clauses, "block_number <= ?")
		args = append(args, v)
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM audit_events"+where, args...).Scan(&total); err != nil {
		h.log.Errorf("failed to count audit events: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query audit events")
		return
	}

	var auditEvents []*projector.AuditEvent
	query := "SELECT * FROM audit_events" + where + " ORDER BY block_number ASC, log_index ASC LIMIT ? OFFSET ?"
	if err := meddler.QueryAll(h.db, &auditEvents, query, append(args, limit, offset)...); err != nil {
		h.log.Errorf("failed to query audit events: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to query audit events")
		return
	}

	items := make([]AuditEventResponse, 0, len(auditEvents))
	for _, ev := range auditEvents {
		items = append(items, toAuditEventResponse(ev))
	}

	respondJSON(w, http.StatusOK, ListResponse{
		Items: items,
		Pagination: PaginationResult{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
		},
	})
}
