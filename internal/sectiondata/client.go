package sectiondata

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/buildtrack/buildtrack/internal/backend"
	"github.com/buildtrack/buildtrack/internal/rbac"
)

// FetchObserver receives one call per settled fetch.
type FetchObserver interface {
	ObserveFetch(section, outcome string, elapsed time.Duration)
}

// Fetch outcomes reported to the observer.
const (
	outcomeSuccess   = "success"
	outcomeFailure   = "failure"
	outcomeError     = "error"
	outcomeDiscarded = "discarded"
)

// Client dispatches section fetches to the backend.
type Client struct {
	backend  backend.Backend
	logger   *slog.Logger
	observer FetchObserver
}

// NewClient constructs a Client. logger and observer may be nil.
func NewClient(b backend.Backend, logger *slog.Logger, observer FetchObserver) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{backend: b, logger: logger, observer: observer}
}

// Fetch loads the payload of section for user. The returned value is the
// backend payload type of the section, e.g. backend.InventoryData.
func (c *Client) Fetch(ctx context.Context, section Section, user *rbac.User) (any, error) {
	if user == nil {
		return nil, ErrNoUser
	}
	start := time.Now()
	data, err := c.dispatch(ctx, section, *user)
	c.record(section, err, time.Since(start))
	return data, err
}

func (c *Client) dispatch(ctx context.Context, section Section, user rbac.User) (any, error) {
	switch section {
	case SectionDashboard:
		resp, err := c.backend.GetDashboardData(ctx, user)
		return settle(section, resp, err)
	case SectionAnalytics:
		resp, err := c.backend.GetAnalyticsData(ctx, user)
		return settle(section, resp, err)
	case SectionTeam:
		resp, err := c.backend.GetTeamData(ctx, user)
		return settle(section, resp, err)
	case SectionProjects:
		resp, err := c.backend.GetProjectsData(ctx, user)
		return settle(section, resp, err)
	case SectionTasks:
		resp, err := c.backend.GetTasksData(ctx, user)
		return settle(section, resp, err)
	case SectionInventory:
		resp, err := c.backend.GetInventoryData(ctx, user)
		return settle(section, resp, err)
	case SectionOrders:
		resp, err := c.backend.GetOrdersData(ctx, user)
		return settle(section, resp, err)
	case SectionInvoices:
		resp, err := c.backend.GetInvoicesData(ctx, user)
		return settle(section, resp, err)
	case SectionUsers:
		resp, err := c.backend.GetUsersData(ctx, user)
		return settle(section, resp, err)
	case SectionSecurity:
		resp, err := c.backend.GetSecurityData(ctx, user)
		return settle(section, resp, err)
	default:
		return nil, &UnknownSectionError{Section: section}
	}
}

func settle[T any](section Section, resp backend.Response[T], err error) (any, error) {
	if err != nil {
		return nil, &FetchError{Section: section, Message: MsgNetwork, Err: err}
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = MsgFetchDefault
		}
		return nil, &FetchError{Section: section, Message: msg}
	}
	return resp.Data, nil
}

func (c *Client) record(section Section, err error, elapsed time.Duration) {
	outcome := outcomeSuccess
	var fetchErr *FetchError
	switch {
	case err == nil:
	case errors.As(err, &fetchErr) && fetchErr.Err == nil:
		outcome = outcomeFailure
	default:
		outcome = outcomeError
	}
	c.logger.Debug("section fetch",
		slog.String("section", section.String()),
		slog.String("outcome", outcome),
		slog.Duration("elapsed", elapsed),
		slog.Any("error", err),
	)
	c.observe(section, outcome, elapsed)
}

func (c *Client) observe(section Section, outcome string, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveFetch(section.String(), outcome, elapsed)
	}
}
