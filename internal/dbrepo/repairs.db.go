package dbrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voltedge/workshop-api/internal/models"
)

// computeIsLate reports whether a job closed after its due date. An empty or
// unparsable due date never counts as late.
func computeIsLate(dueDate string, completed time.Time) int {
	due, err := time.Parse(dateLayout, dueDate)
	if err != nil {
		return 0
	}
	day := completed.Format(dateLayout)
	completedDay, _ := time.Parse(dateLayout, day)
	if completedDay.After(due) {
		return 1
	}
	return 0
}

// partsDelta returns the per-item quantities in current that exceed what was
// already deducted. Custom parts (ItemID 0) never track against stock, and
// quantity reductions are not restocked.
func partsDelta(already, current []models.RepairPart) []models.RepairPart {
	deducted := make(map[int64]int64)
	for _, p := range already {
		deducted[p.ItemID] += p.Qty
	}

	wanted := make(map[int64]int64)
	var order []int64
	for _, p := range current {
		if p.ItemID == 0 {
			continue
		}
		if _, seen := wanted[p.ItemID]; !seen {
			order = append(order, p.ItemID)
		}
		wanted[p.ItemID] += p.Qty
	}

	var delta []models.RepairPart
	for _, id := range order {
		diff := wanted[id] - deducted[id]
		if diff > 0 {
			delta = append(delta, models.RepairPart{ItemID: id, Qty: diff})
		}
	}
	return delta
}

// mergeDeducted folds a freshly deducted delta into the job's deduction
// snapshot.
func mergeDeducted(already, delta []models.RepairPart) []models.RepairPart {
	merged := append([]models.RepairPart{}, already...)
	for _, d := range delta {
		found := false
		for i := range merged {
			if merged[i].ItemID == d.ItemID {
				merged[i].Qty += d.Qty
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, d)
		}
	}
	return merged
}

// ============================== Repair Repository ==============================
type RepairRepo struct {
	db *pgxpool.Pool
}

func NewRepairRepo(db *pgxpool.Pool) *RepairRepo {
	return &RepairRepo{db: db}
}

// AddRepair registers a new job in Pending state. StartDate defaults to
// today.
func (r *RepairRepo) AddRepair(ctx context.Context, job *models.RepairJob) error {
	job.Status = models.RepairStatusPending
	if job.StartDate == "" {
		job.StartDate = time.Now().Format(dateLayout)
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO repairs (client_name, inverter_model, issue, status, phone_number, assigned_to, start_date, due_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at`,
		job.ClientName, job.InverterModel, job.Issue, job.Status,
		job.Phone, job.AssignedTo, job.StartDate, job.DueDate,
	).Scan(&job.ID, &job.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert repair: %w", err)
	}
	return nil
}

// SaveProgress updates a job's costs, parts and labor and moves it to
// In Progress. Stock is deducted only for the part quantities added since
// the last save; repeated saves with the same parts deduct nothing.
// Delivered jobs and missing ids are silent no-ops.
func (r *RepairRepo) SaveProgress(ctx context.Context, job *models.RepairJob) error {
	return withRetry(ctx, func() error {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		var status string
		var deductedJSON []byte
		err = tx.QueryRow(ctx,
			`SELECT status, deducted_parts FROM repairs WHERE id = $1 FOR UPDATE`,
			job.ID,
		).Scan(&status, &deductedJSON)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("lock repair %d: %w", job.ID, err)
		}
		if status == models.RepairStatusDelivered {
			return nil
		}

		var already []models.RepairPart
		if err := json.Unmarshal(deductedJSON, &already); err != nil {
			return fmt.Errorf("decode deducted parts for repair %d: %w", job.ID, err)
		}

		delta := partsDelta(already, job.Parts)
		reference := fmt.Sprintf("Job #%d", job.ID)
		for _, d := range delta {
			if err := deductStockTx(ctx, tx, d.ItemID, d.Qty, "Repair Job", reference); err != nil {
				return err
			}
		}
		job.DeductedParts = mergeDeducted(already, delta)

		partsJSON, laborJSON, mergedJSON, err := encodeJobJSON(job)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE repairs
			SET service_cost = $1, parts_cost = $2, total_cost = $3, used_parts = $4,
			    parts_data = $5, labor_data = $6, deducted_parts = $7, status = $8
			WHERE id = $9`,
			job.ServiceCost, job.PartsCost, job.TotalCost, job.UsedParts,
			partsJSON, laborJSON, mergedJSON, models.RepairStatusInProgress, job.ID,
		)
		if err != nil {
			return fmt.Errorf("update repair %d: %w", job.ID, err)
		}

		return tx.Commit(ctx)
	})
}

// CloseJob finalizes a job: records the final costs, marks it Delivered with
// today's completion date and the lateness flag, debits the client's ledger
// for the total, credits each technician's payroll ledger for their labor
// lines and deducts any not-yet-deducted part quantities. Closing an already
// Delivered job or a missing id does nothing.
func (r *RepairRepo) CloseJob(ctx context.Context, job *models.RepairJob) error {
	return withRetry(ctx, func() error {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		var status, clientName, model, dueDate string
		var deductedJSON []byte
		err = tx.QueryRow(ctx, `
			SELECT status, client_name, inverter_model, due_date, deducted_parts
			FROM repairs WHERE id = $1 FOR UPDATE`,
			job.ID,
		).Scan(&status, &clientName, &model, &dueDate, &deductedJSON)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("lock repair %d: %w", job.ID, err)
		}
		if status == models.RepairStatusDelivered {
			return nil
		}

		var already []models.RepairPart
		if err := json.Unmarshal(deductedJSON, &already); err != nil {
			return fmt.Errorf("decode deducted parts for repair %d: %w", job.ID, err)
		}

		now := time.Now()
		completionDate := now.Format(dateLayout)
		isLate := computeIsLate(dueDate, now)

		delta := partsDelta(already, job.Parts)
		reference := fmt.Sprintf("Job #%d", job.ID)
		for _, d := range delta {
			if err := deductStockTx(ctx, tx, d.ItemID, d.Qty, "Repair Job", reference); err != nil {
				return err
			}
		}
		job.DeductedParts = mergeDeducted(already, delta)

		partsJSON, laborJSON, mergedJSON, err := encodeJobJSON(job)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE repairs
			SET service_cost = $1, parts_cost = $2, total_cost = $3, used_parts = $4,
			    parts_data = $5, labor_data = $6, deducted_parts = $7,
			    status = $8, completion_date = $9, is_late = $10
			WHERE id = $11`,
			job.ServiceCost, job.PartsCost, job.TotalCost, job.UsedParts,
			partsJSON, laborJSON, mergedJSON,
			models.RepairStatusDelivered, completionDate, isLate, job.ID,
		)
		if err != nil {
			return fmt.Errorf("close repair %d: %w", job.ID, err)
		}

		_, err = addLedgerEntryTx(ctx, tx, &models.LedgerEntry{
			PartyName:   clientName,
			Date:        completionDate,
			Description: fmt.Sprintf("Repair Job #%d - %s", job.ID, model),
			Debit:       job.TotalCost,
		})
		if err != nil {
			return err
		}

		for _, l := range job.Labor {
			if l.Technician == "" || l.Cost <= 0 {
				continue
			}
			desc := l.Description
			if desc == "" {
				desc = "Labor"
			}
			_, err = addEmployeeLedgerEntryTx(ctx, tx, &models.EmployeeLedgerEntry{
				EmployeeName: l.Technician,
				Date:         completionDate,
				Type:         models.EntryTypeWorkLog,
				Description:  fmt.Sprintf("Job #%d - %s", job.ID, desc),
				Earned:       l.Cost,
			})
			if err != nil {
				return err
			}
		}

		job.Status = models.RepairStatusDelivered
		job.CompletionDate = completionDate
		job.IsLate = isLate

		return tx.Commit(ctx)
	})
}

func encodeJobJSON(job *models.RepairJob) (parts, labor, deducted []byte, err error) {
	if job.Parts == nil {
		job.Parts = []models.RepairPart{}
	}
	if job.Labor == nil {
		job.Labor = []models.LaborItem{}
	}
	if job.DeductedParts == nil {
		job.DeductedParts = []models.RepairPart{}
	}
	if parts, err = json.Marshal(job.Parts); err != nil {
		return nil, nil, nil, fmt.Errorf("encode parts: %w", err)
	}
	if labor, err = json.Marshal(job.Labor); err != nil {
		return nil, nil, nil, fmt.Errorf("encode labor: %w", err)
	}
	if deducted, err = json.Marshal(job.DeductedParts); err != nil {
		return nil, nil, nil, fmt.Errorf("encode deducted parts: %w", err)
	}
	return parts, labor, deducted, nil
}

const repairColumns = `
	id, client_name, inverter_model, issue, status, phone_number, created_at,
	service_cost, parts_cost, total_cost, used_parts,
	parts_data, labor_data, deducted_parts,
	assigned_to, start_date, due_date, completion_date, is_late`

func scanRepair(row pgx.Row) (*models.RepairJob, error) {
	var job models.RepairJob
	var partsJSON, laborJSON, deductedJSON []byte
	err := row.Scan(
		&job.ID, &job.ClientName, &job.InverterModel, &job.Issue, &job.Status,
		&job.Phone, &job.CreatedAt,
		&job.ServiceCost, &job.PartsCost, &job.TotalCost, &job.UsedParts,
		&partsJSON, &laborJSON, &deductedJSON,
		&job.AssignedTo, &job.StartDate, &job.DueDate, &job.CompletionDate, &job.IsLate,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(partsJSON, &job.Parts); err != nil {
		return nil, fmt.Errorf("decode parts for repair %d: %w", job.ID, err)
	}
	if err := json.Unmarshal(laborJSON, &job.Labor); err != nil {
		return nil, fmt.Errorf("decode labor for repair %d: %w", job.ID, err)
	}
	if err := json.Unmarshal(deductedJSON, &job.DeductedParts); err != nil {
		return nil, fmt.Errorf("decode deducted parts for repair %d: %w", job.ID, err)
	}
	return &job, nil
}

func (r *RepairRepo) queryRepairs(ctx context.Context, where string, args ...any) ([]*models.RepairJob, error) {
	sql := `SELECT ` + repairColumns + ` FROM repairs ` + where + ` ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch repairs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.RepairJob
	for rows.Next() {
		job, err := scanRepair(rows)
		if err != nil {
			return nil, fmt.Errorf("scan repair: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// AllRepairs returns every job, newest first.
func (r *RepairRepo) AllRepairs(ctx context.Context) ([]*models.RepairJob, error) {
	return r.queryRepairs(ctx, ``)
}

// ActiveRepairs returns jobs not yet Delivered.
func (r *RepairRepo) ActiveRepairs(ctx context.Context) ([]*models.RepairJob, error) {
	return r.queryRepairs(ctx, `WHERE status <> $1`, models.RepairStatusDelivered)
}

// JobHistory returns Delivered jobs only.
func (r *RepairRepo) JobHistory(ctx context.Context) ([]*models.RepairJob, error) {
	return r.queryRepairs(ctx, `WHERE status = $1`, models.RepairStatusDelivered)
}

// GetRepair fetches one job by id. Returns (nil, nil) when no such job
// exists.
func (r *RepairRepo) GetRepair(ctx context.Context, id int64) (*models.RepairJob, error) {
	row := r.db.QueryRow(ctx, `SELECT `+repairColumns+` FROM repairs WHERE id = $1`, id)
	job, err := scanRepair(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch repair %d: %w", id, err)
	}
	return job, nil
}
