package sheets

import (
	"context"

	"slotdesk/pkg/model"
)

// Store is the gateway the orchestrators talk to. It exposes the three
// store primitives in domain terms and defines no atomicity beyond what
// the spreadsheet service already guarantees for one batched write.
type Store interface {
	// GetSlots reads the full slot range in row order.
	GetSlots(ctx context.Context) ([]model.Slot, error)
	// GetSlotsByID reads one row per requested id in one batched call.
	// The result is index-aligned with ids; a missing row yields nil.
	GetSlotsByID(ctx context.Context, ids []int) ([]*model.Slot, error)
	// GetSignups reads the full signup range in row order.
	GetSignups(ctx context.Context) ([]model.Signup, error)
	// GetSignup reads a single signup row; (nil, nil) when absent.
	GetSignup(ctx context.Context, rowID int) (*model.Signup, error)
	// Apply submits every directive in the batch as one write call.
	Apply(ctx context.Context, batch WriteBatch) error
	// Ping checks store reachability.
	Ping(ctx context.Context) error
}

// WriteBatch collects the independent directives of one batched write.
type WriteBatch struct {
	AppendSignups []model.Signup
	SetTaken      []TakenUpdate
	SetStatus     []StatusUpdate
}

type TakenUpdate struct {
	SlotRowID int
	Taken     int
}

type StatusUpdate struct {
	SignupRowID int
	Status      string
}

type sheetStore struct {
	client       *Client
	slotsSheet   string
	signupsSheet string
}

func NewStore(client *Client, slotsSheet, signupsSheet string) Store {
	return &sheetStore{
		client:       client,
		slotsSheet:   slotsSheet,
		signupsSheet: signupsSheet,
	}
}

func (s *sheetStore) GetSlots(ctx context.Context) ([]model.Slot, error) {
	rows, err := s.client.GetValues(ctx, dataRange(s.slotsSheet, colSlotAvailable))
	if err != nil {
		return nil, err
	}

	slots := make([]model.Slot, 0, len(rows))
	for i, row := range rows {
		slots = append(slots, slotFromRow(firstDataRow+i, row))
	}
	return slots, nil
}

func (s *sheetStore) GetSlotsByID(ctx context.Context, ids []int) ([]*model.Slot, error) {
	ranges := make([]string, len(ids))
	for i, id := range ids {
		ranges[i] = rowRange(s.slotsSheet, id, colSlotDate, colSlotAvailable)
	}

	results, err := s.client.BatchGetValues(ctx, ranges)
	if err != nil {
		return nil, err
	}

	slots := make([]*model.Slot, len(ids))
	for i, rows := range results {
		if len(rows) == 0 {
			continue
		}
		slot := slotFromRow(ids[i], rows[0])
		slots[i] = &slot
	}
	return slots, nil
}

func (s *sheetStore) GetSignups(ctx context.Context) ([]model.Signup, error) {
	rows, err := s.client.GetValues(ctx, dataRange(s.signupsSheet, colSignupStatus))
	if err != nil {
		return nil, err
	}

	signups := make([]model.Signup, 0, len(rows))
	for i, row := range rows {
		signups = append(signups, signupFromRow(firstDataRow+i, row))
	}
	return signups, nil
}

func (s *sheetStore) GetSignup(ctx context.Context, rowID int) (*model.Signup, error) {
	rows, err := s.client.GetValues(ctx, rowRange(s.signupsSheet, rowID, colSignupTimestamp, colSignupStatus))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, nil
	}

	signup := signupFromRow(rowID, rows[0])
	return &signup, nil
}

func (s *sheetStore) Apply(ctx context.Context, batch WriteBatch) error {
	var requests []WriteRequest

	if len(batch.AppendSignups) > 0 {
		rows := make([][]any, len(batch.AppendSignups))
		for i, signup := range batch.AppendSignups {
			rows[i] = signupToRow(signup)
		}
		requests = append(requests, WriteRequest{
			AppendCells: &AppendCells{Sheet: s.signupsSheet, Rows: rows},
		})
	}

	for _, upd := range batch.SetTaken {
		requests = append(requests, WriteRequest{
			UpdateCells: &UpdateCells{
				Range:  cellRange(s.slotsSheet, upd.SlotRowID, colSlotTaken),
				Values: [][]any{{upd.Taken}},
			},
		})
	}

	for _, upd := range batch.SetStatus {
		requests = append(requests, WriteRequest{
			UpdateCells: &UpdateCells{
				Range:  cellRange(s.signupsSheet, upd.SignupRowID, colSignupStatus),
				Values: [][]any{{upd.Status}},
			},
		})
	}

	return s.client.BatchUpdate(ctx, requests)
}

func (s *sheetStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
