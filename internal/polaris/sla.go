package polaris

import (
	"context"
	"errors"
)

// Sentinel SLA domain identifiers. They are never sent as UUID arguments;
// AssignSLA translates them into an assignment type instead.
const (
	// SLAUnprotected removes any direct SLA assignment from the objects.
	SLAUnprotected = "UNPROTECTED"
	// SLADoNotProtect marks the objects explicitly unprotected, blocking
	// SLA inheritance from their parents.
	SLADoNotProtect = "DONOTPROTECT"
)

// Wire values of the SlaAssignTypeEnum.
const (
	assignTypeNoAssignment = "noAssignment"
	assignTypeDoNotProtect = "doNotProtect"
	assignTypeProtect      = "protectWithSlaId"
)

// SLADomain is a named protection policy assignable to objects.
type SLADomain struct {
	ID          string
	Name        string
	Description string
}

// slaNode is the raw SLAList node shape.
type slaNode struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// projectSLADomain flattens a raw node into an SLADomain record.
func projectSLADomain(n slaNode) SLADomain {
	return SLADomain{
		ID:          n.ID,
		Name:        n.Name,
		Description: n.Description,
	}
}

// ListSLADomains returns all SLA domains, optionally filtered by name.
// Results arrive in server order across however many pages the server
// returns.
func (c *Client) ListSLADomains(ctx context.Context, name string) ([]SLADomain, error) {
	variables := map[string]any{"first": 20}
	if name != "" {
		variables["name"] = name
	}

	nodes, err := paginate[slaNode](ctx, c, opSLAList, variables, "globalSlaConnection")
	if err != nil {
		return nil, err
	}

	domains := make([]SLADomain, 0, len(nodes))
	for _, n := range nodes {
		domains = append(domains, projectSLADomain(n))
	}
	return domains, nil
}

// translateSLAAssignment maps an SLA domain id onto the mutation's
// (assignType, optionalFid) pair. Pure; any non-sentinel value, including
// the empty string, passes through as a protectWithSlaId target.
func translateSLAAssignment(slaID string) (assignType string, optionalFid *string) {
	switch slaID {
	case SLAUnprotected:
		return assignTypeNoAssignment, nil
	case SLADoNotProtect:
		return assignTypeDoNotProtect, nil
	default:
		return assignTypeProtect, &slaID
	}
}

// AssignSLA attaches the given SLA domain to the objects, or detaches it
// when slaID is one of the sentinels. The mutation is all-or-nothing on
// the server side: anything but an explicit success is reported as an
// *AssignmentError carrying the raw payload, never a partial success.
func (c *Client) AssignSLA(ctx context.Context, objectIDs []string, slaID string) error {
	if len(objectIDs) == 0 {
		return errors.New("at least one object id is required")
	}

	assignType, optionalFid := translateSLAAssignment(slaID)
	variables := map[string]any{
		"objectIds":            objectIDs,
		"globalSlaAssignType":  assignType,
		"globalSlaOptionalFid": optionalFid,
	}

	resp, err := c.doGraphQL(ctx, opAssignSLA, variables)
	if err != nil {
		// A top-level GraphQL error means the assignment did not happen;
		// report it as an assignment failure with the payload attached.
		var gqlErr *GraphQLError
		if errors.As(err, &gqlErr) {
			return &AssignmentError{RawResponse: gqlErr.Raw}
		}
		return err
	}

	var data struct {
		AssignSLA *struct {
			Success *bool `json:"success"`
		} `json:"assignSla"`
	}
	if err := resp.unmarshalData(opAssignSLA, &data); err != nil {
		return &AssignmentError{RawResponse: resp.raw}
	}
	if data.AssignSLA == nil || data.AssignSLA.Success == nil || !*data.AssignSLA.Success {
		return &AssignmentError{RawResponse: resp.raw}
	}
	return nil
}
