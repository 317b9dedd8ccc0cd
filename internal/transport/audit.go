package transport

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"spatialreq/internal/domain"
)

// CommandRecord is the persisted row for a single emitted Command. The
// audit log records what the planner decided, not its in-memory state:
// planner state never touches the database.
type CommandRecord struct {
	bun.BaseModel `bun:"table:spatialreq_commands,alias:c"`

	ID         uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	InstanceID uuid.UUID `bun:"instance_id,type:uuid,notnull" json:"instance_id"`
	Kind       string    `bun:"kind,notnull" json:"kind"`
	ObjectName string    `bun:"object_name" json:"object_name,omitempty"`
	NewPosX    *float64  `bun:"new_pos_x" json:"new_pos_x,omitempty"`
	NewPosY    *float64  `bun:"new_pos_y" json:"new_pos_y,omitempty"`
	EdgeFrom   int       `bun:"edge_from" json:"edge_from"`
	EdgeTo     int       `bun:"edge_to" json:"edge_to"`
	RequestTxt string    `bun:"request_text" json:"request_text,omitempty"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// AuditLog persists emitted commands to Postgres via bun. It is optional:
// a Server with no AuditLog configured simply does not record anything.
type AuditLog struct {
	db  *bun.DB
	log zerolog.Logger
}

// NewAuditLog opens a Postgres connection at dsn and registers the
// CommandRecord model, mirroring the teacher's pgdriver connector setup.
func NewAuditLog(dsn string, log zerolog.Logger) (*AuditLog, error) {
	connector := pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithTimeout(30*time.Second),
		pgdriver.WithDialTimeout(10*time.Second),
	)
	sqldb := sql.OpenDB(connector)
	db := bun.NewDB(sqldb, pgdialect.New())
	db.RegisterModel((*CommandRecord)(nil))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if _, err := db.NewCreateTable().Model((*CommandRecord)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, err
	}

	return &AuditLog{db: db, log: log}, nil
}

// Record inserts a row for cmd, emitted by the planner instance id. Insert
// failures are logged, not returned: a broken audit log must never stall
// the plan_request response path.
func (a *AuditLog) Record(instanceID uuid.UUID, cmd domain.Command) {
	row := &CommandRecord{
		ID:         cmd.ID,
		InstanceID: instanceID,
		Kind:       cmd.Kind.String(),
		ObjectName: cmd.ObjectName,
		EdgeFrom:   cmd.Edge.From,
		EdgeTo:     cmd.Edge.To,
		RequestTxt: cmd.RequestText,
	}
	if cmd.Kind == domain.CommandExecute {
		x, y := cmd.NewPos.X, cmd.NewPos.Y
		row.NewPosX = &x
		row.NewPosY = &y
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := a.db.NewInsert().Model(row).Exec(ctx); err != nil {
		a.log.Error().Err(err).Str("command_id", cmd.ID.String()).Msg("failed to persist command audit record")
	}
}

// Close closes the underlying database connection.
func (a *AuditLog) Close() error {
	return a.db.Close()
}
