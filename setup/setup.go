// Package setup verifies that a taskhub database has the schema the
// application expects and seeds the default organization. It is idempotent
// and never destructive: probes are read-only and the only write it ever
// performs is creating the seed record when none exists.
package setup

import (
	"context"
	"fmt"
	"strings"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"
	"gorm.io/gorm"

	"github.com/taskhub-app/taskhub/model"
)

var log = logging.Logger("setup")

// ExpectedTables is the fixed, ordered list of tables the application needs.
// Results are reported in this order.
var ExpectedTables = []string{
	"organizations",
	"users",
	"tasks",
	"submissions",
	"notifications",
	"bonuses",
	"penalties",
}

// DefaultOrganizationCheck names the seed-record check in the result list.
const DefaultOrganizationCheck = "default organization"

const errTableMissing = "Table does not exist"

// CheckResult records the outcome of a single check. Results are append-only;
// a fresh list is built on every run.
type CheckResult struct {
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
	Error  string `json:"error,omitempty"`
}

// RunSummary is derived purely from a result list.
type RunSummary struct {
	Passed  int
	Failed  int
	Failing []string
}

func Summarize(results []CheckResult) RunSummary {
	var s RunSummary
	for _, r := range results {
		if r.Exists {
			s.Passed++
		} else {
			s.Failed++
			s.Failing = append(s.Failing, r.Name)
		}
	}
	return s
}

// Checker runs the provisioning checks against an injected database handle.
type Checker struct {
	DB      *gorm.DB
	Timeout time.Duration
}

const DefaultTimeout = time.Second * 5

func NewChecker(db *gorm.DB) *Checker {
	return &Checker{DB: db, Timeout: DefaultTimeout}
}

// Run probes every expected table, then ensures the default organization
// exists, and returns one result per check in call order. No check's failure
// stops the others; Run itself never returns early.
func (c *Checker) Run(ctx context.Context) []CheckResult {
	results := make([]CheckResult, 0, len(ExpectedTables)+1)

	for _, table := range ExpectedTables {
		res := c.probeTable(ctx, table)
		if res.Exists {
			log.Infof("table %s: ok", table)
		} else {
			log.Warnf("table %s: %s", table, res.Error)
		}
		results = append(results, res)
	}

	results = append(results, c.ensureDefaultOrganization(ctx))
	return results
}

// probeTable attempts a minimal read against the named table. A read that
// succeeds with zero rows still proves the table exists.
func (c *Checker) probeTable(ctx context.Context, table string) (res CheckResult) {
	res = CheckResult{Name: table}

	defer func() {
		if r := recover(); r != nil {
			res.Exists = false
			res.Error = fmt.Sprintf("%v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	var rows []map[string]interface{}
	err := c.DB.WithContext(ctx).Table(table).Limit(1).Find(&rows).Error
	switch {
	case err == nil:
		res.Exists = true
	case isTimeout(err):
		res.Error = "timed out"
	case isUndefinedTable(err):
		res.Error = errTableMissing
	default:
		res.Error = err.Error()
	}
	return res
}

// ensureDefaultOrganization checks for any active organization, oldest first,
// and seeds the fixed default record when none is found. When the existence
// query itself fails with anything other than not-found, no create is
// attempted: writing while existence is uncertain risks a duplicate.
func (c *Checker) ensureDefaultOrganization(ctx context.Context) (res CheckResult) {
	res = CheckResult{Name: DefaultOrganizationCheck}

	defer func() {
		if r := recover(); r != nil {
			res.Exists = false
			res.Error = fmt.Sprintf("%v", r)
		}
	}()

	queryCtx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	var org model.Organization
	err := c.DB.WithContext(queryCtx).
		Where("active = ?", true).
		Order("created_at ASC").
		First(&org).Error

	switch {
	case err == nil:
		log.Infof("default organization: ok (%s)", org.ID)
		res.Exists = true
		return res
	case !xerrors.Is(err, gorm.ErrRecordNotFound):
		if isTimeout(err) {
			res.Error = "timed out"
		} else {
			res.Error = err.Error()
		}
		log.Warnf("default organization: existence check failed: %s", res.Error)
		return res
	}

	createCtx, cancelCreate := context.WithTimeout(ctx, c.timeout())
	defer cancelCreate()

	seed := model.DefaultOrganization()
	if err := c.DB.WithContext(createCtx).Create(&seed).Error; err != nil {
		res.Error = err.Error()
		log.Warnf("default organization: creation failed: %s", res.Error)
		return res
	}

	log.Infof("default organization: created %s", seed.ID)
	res.Exists = true
	return res
}

func (c *Checker) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

func isTimeout(err error) bool {
	return xerrors.Is(err, context.DeadlineExceeded)
}

// isUndefinedTable recognizes the relation-not-found error class across the
// dialects we support: sqlite reports "no such table", postgres reports
// SQLSTATE 42P01 with a "does not exist" message.
func isUndefinedTable(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such table") ||
		strings.Contains(msg, "42p01") ||
		(strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist"))
}
