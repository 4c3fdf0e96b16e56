package projector

import (
	"database/sql"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/russross/meddler"
)

// addBig returns a+b, treating nil as zero. The result is always a fresh value.
func addBig(a, b *big.Int) *big.Int {
	sum := new(big.Int)
	if a != nil {
		sum.Set(a)
	}
	if b != nil {
		sum.Add(sum, b)
	}

	return sum
}

// subBigFloor returns a-b floored at zero, treating nil as zero. On-chain
// accounting cannot go negative, so a projected underflow clamps instead of
// corrupting the aggregate.
func subBigFloor(a, b *big.Int) *big.Int {
	diff := new(big.Int)
	if a != nil {
		diff.Set(a)
	}
	if b != nil {
		diff.Sub(diff, b)
	}
	if diff.Sign() < 0 {
		diff.SetInt64(0)
	}

	return diff
}

func getJob(tx *sql.Tx, jobID common.Hash) (*Job, bool, error) {
	job := &Job{}
	err := meddler.QueryRow(tx, job, "SELECT * FROM jobs WHERE job_id = ?", jobID.Hex())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return job, true, nil
}

func getDispute(tx *sql.Tx, disputeID common.Hash) (*Dispute, bool, error) {
	dispute := &Dispute{}
	err := meddler.QueryRow(tx, dispute, "SELECT * FROM disputes WHERE dispute_id = ?", disputeID.Hex())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return dispute, true, nil
}

func getTemplate(tx *sql.Tx, templateID *big.Int) (*JobTemplate, bool, error) {
	template := &JobTemplate{}
	err := meddler.QueryRow(tx, template, "SELECT * FROM job_templates WHERE template_id = ?", templateID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return template, true, nil
}

func getOrCreateArbitrator(tx *sql.Tx, addr common.Address, ts uint64) (*Arbitrator, error) {
	arb := &Arbitrator{}
	err := meddler.QueryRow(tx, arb, "SELECT * FROM arbitrators WHERE address = ?", addr.Hex())
	if err == nil {
		return arb, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	arb = &Arbitrator{
		Address:      addr,
		Staked:       big.NewInt(0),
		TotalSlashed: big.NewInt(0),
		UpdatedAt:    ts,
	}
	if err := meddler.Insert(tx, "arbitrators", arb); err != nil {
		return nil, err
	}

	return arb, nil
}

func getOrCreateAgent(tx *sql.Tx, agentID *big.Int, ts uint64) (*AgentReputation, error) {
	agent := &AgentReputation{}
	err := meddler.QueryRow(tx, agent, "SELECT * FROM agent_reputation WHERE agent_id = ?", agentID.String())
	if err == nil {
		return agent, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	agent = &AgentReputation{
		AgentID:   new(big.Int).Set(agentID),
		Score:     big.NewInt(0),
		UpdatedAt: ts,
	}
	if err := meddler.Insert(tx, "agent_reputation", agent); err != nil {
		return nil, err
	}

	return agent, nil
}

func getOrCreateProtocolStats(tx *sql.Tx) (*ProtocolStats, error) {
	stats := &ProtocolStats{}
	err := meddler.QueryRow(tx, stats, "SELECT * FROM protocol_stats WHERE id = 1")
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	stats = &ProtocolStats{
		TotalVolume:        big.NewInt(0),
		TotalFeesCollected: big.NewInt(0),
		TotalRefundAmount:  big.NewInt(0),
		TotalStaked:        big.NewInt(0),
	}
	if err := meddler.Insert(tx, "protocol_stats", stats); err != nil {
		return nil, err
	}

	return stats, nil
}

func getOrCreateDailyStats(tx *sql.Tx, blockTimestamp uint64) (*DailyStats, error) {
	day := blockTimestamp / 86400

	daily := &DailyStats{}
	err := meddler.QueryRow(tx, daily, "SELECT * FROM daily_stats WHERE day = ?", day)
	if err == nil {
		return daily, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	daily = &DailyStats{
		Day:           day,
		Volume:        big.NewInt(0),
		FeesCollected: big.NewInt(0),
		UpdatedAt:     blockTimestamp,
	}
	if err := meddler.Insert(tx, "daily_stats", daily); err != nil {
		return nil, err
	}

	return daily, nil
}
