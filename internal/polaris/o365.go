package polaris

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/polaris-o365-go/internal/logger"
)

// User is an Office 365 user protected (or not) under a subscription.
type User struct {
	ID                     string
	Name                   string
	EmailAddress           string
	SLAAssignment          string
	EffectiveSLADomainName string
}

// Subscription is an Office 365 organisation with its protection summary,
// joined from the org listing and the per-org detail card.
type Subscription struct {
	ID                      string
	Name                    string
	Status                  string
	UsersCount              int
	UnprotectedUsersCount   int
	EffectiveSLADomainName  string
	EffectiveSLADomainID    string
	ConfiguredSLADomainName string
	ConfiguredSLADomainID   string
}

// slaRef is the nested SLA domain shape shared by several nodes.
type slaRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// userNode is the raw O365UserList node shape.
type userNode struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	EmailAddress       string  `json:"emailAddress"`
	SLAAssignment      string  `json:"slaAssignment"`
	EffectiveSLADomain *slaRef `json:"effectiveSlaDomain"`
}

// orgIDNode is the raw O365OrgList node shape.
type orgIDNode struct {
	ID string `json:"id"`
}

// orgCard is the raw o365OrgCard payload.
type orgCard struct {
	ID                    string  `json:"id"`
	Status                string  `json:"status"`
	Name                  string  `json:"name"`
	EffectiveSLADomain    *slaRef `json:"effectiveSlaDomain"`
	ConfiguredSLADomain   *slaRef `json:"configuredSlaDomain"`
	UnprotectedUsersCount int     `json:"unprotectedUsersCount"`
	ChildConnection       *struct {
		Count int `json:"count"`
	} `json:"childConnection"`
}

// projectUser flattens a raw node into a User record. A node without an
// effective SLA domain projects to an empty name, not an error.
func projectUser(n userNode) User {
	u := User{
		ID:            n.ID,
		Name:          n.Name,
		EmailAddress:  n.EmailAddress,
		SLAAssignment: n.SLAAssignment,
	}
	if n.EffectiveSLADomain != nil {
		u.EffectiveSLADomainName = n.EffectiveSLADomain.Name
	}
	return u
}

// projectSubscription joins an org id with its detail card.
func projectSubscription(card orgCard) Subscription {
	s := Subscription{
		ID:                    card.ID,
		Name:                  card.Name,
		Status:                card.Status,
		UnprotectedUsersCount: card.UnprotectedUsersCount,
	}
	if card.ChildConnection != nil {
		s.UsersCount = card.ChildConnection.Count
	}
	if card.EffectiveSLADomain != nil {
		s.EffectiveSLADomainID = card.EffectiveSLADomain.ID
		s.EffectiveSLADomainName = card.EffectiveSLADomain.Name
	}
	if card.ConfiguredSLADomain != nil {
		s.ConfiguredSLADomainID = card.ConfiguredSLADomain.ID
		s.ConfiguredSLADomainName = card.ConfiguredSLADomain.Name
	}
	return s
}

// relicFilter excludes soft-deleted objects from hierarchy queries.
func relicFilter() []map[string]any {
	return []map[string]any{
		{"field": "IS_RELIC", "texts": []string{"false"}},
	}
}

// ListUsers returns every non-relic user under the given subscription.
func (c *Client) ListUsers(ctx context.Context, subscriptionID string) ([]User, error) {
	return c.listUsers(ctx, subscriptionID, "")
}

// SearchUsers returns the subscription's users whose name or email
// address matches the search string. Matching is server-side.
func (c *Client) SearchUsers(ctx context.Context, subscriptionID, search string) ([]User, error) {
	return c.listUsers(ctx, subscriptionID, search)
}

func (c *Client) listUsers(ctx context.Context, subscriptionID, search string) ([]User, error) {
	if subscriptionID == "" {
		return nil, errors.New("subscription id is required")
	}

	filter := relicFilter()
	if search != "" {
		filter = append(filter, map[string]any{
			"field": "NAME_OR_EMAIL_ADDRESS",
			"texts": []string{search},
		})
	}

	variables := map[string]any{
		"orgId":     subscriptionID,
		"first":     100,
		"filter":    filter,
		"sortBy":    "EFFECTIVE_SLA",
		"sortOrder": "DESC",
	}

	nodes, err := paginate[userNode](ctx, c, opO365UserList, variables, "o365Users")
	if err != nil {
		return nil, err
	}

	users := make([]User, 0, len(nodes))
	for _, n := range nodes {
		users = append(users, projectUser(n))
	}
	return users, nil
}

// ListSubscriptions enumerates the protected Office 365 organisations in
// two phases: one org-id listing request, then one detail-card request
// per org, strictly in sequence. A failing card fails the whole call; no
// partial list is returned.
//
// The id listing deliberately issues a single request at the server's
// default page size. Accounts with more organisations than one page would
// be truncated; that page boundary is logged instead of silently fetched
// so the call count stays predictable.
func (c *Client) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	variables := map[string]any{
		"after":  nil,
		"filter": relicFilter(),
	}

	resp, err := c.doGraphQL(ctx, opO365OrgList, variables)
	if err != nil {
		return nil, err
	}

	conn, err := decodeConnection[orgIDNode](resp, opO365OrgList, "o365Orgs")
	if err != nil {
		return nil, err
	}
	if conn.PageInfo.HasNextPage {
		logger.Warn("polaris: O365OrgList: server reports more organisations than one page; results are truncated")
	}

	subscriptions := make([]Subscription, 0, len(conn.Edges))
	for _, e := range conn.Edges {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := c.getOrgCard(ctx, e.Node.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch card for org %s: %w", e.Node.ID, err)
		}
		subscriptions = append(subscriptions, projectSubscription(*card))
	}
	return subscriptions, nil
}

// getOrgCard fetches the detail card for one organisation.
func (c *Client) getOrgCard(ctx context.Context, orgID string) (*orgCard, error) {
	resp, err := c.doGraphQL(ctx, opO365OrgCard, map[string]any{"id": orgID})
	if err != nil {
		return nil, err
	}

	var data struct {
		O365Org *orgCard `json:"o365Org"`
	}
	if err := resp.unmarshalData(opO365OrgCard, &data); err != nil {
		return nil, err
	}
	if data.O365Org == nil {
		return nil, fmt.Errorf("org %s: %w", orgID, ErrNotFound)
	}
	return data.O365Org, nil
}
