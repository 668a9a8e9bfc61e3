package polaris

// operation pairs a server-side operation name with its document. The
// names, field selections and enum literals are part of the wire contract
// with the Polaris API and must not be reworded.
type operation struct {
	name string
	doc  string
}

var opSLAList = operation{
	name: "SLAList",
	doc: `query SLAList($after: String, $first: Int, $name: String) {
    globalSlaConnection(after: $after, first: $first, filter: [{field: NAME, text: $name}]) {
        edges {
            node {
                id
                name
                description
            }
        }
        pageInfo {
            endCursor
            hasNextPage
        }
    }
}`,
}

var opAssignSLA = operation{
	name: "AssignSLA",
	doc: `mutation AssignSLA($globalSlaOptionalFid: UUID, $globalSlaAssignType: SlaAssignTypeEnum!, $objectIds: [UUID!]!) {
    assignSla(globalSlaOptionalFid: $globalSlaOptionalFid, globalSlaAssignType: $globalSlaAssignType, objectIds: $objectIds) {
        success
    }
}`,
}

var opO365OrgList = operation{
	name: "O365OrgList",
	doc: `query O365OrgList($after: String, $filter: [Filter!]) {
    o365Orgs(after: $after, filter: $filter) {
        edges {
            node {
                id
            }
        }
        pageInfo {
            endCursor
            hasNextPage
        }
    }
}`,
}

var opO365OrgCard = operation{
	name: "o365OrgCard",
	doc: `query o365OrgCard($id: UUID!) {
    o365Org(fid: $id) {
        id
        status
        name
        effectiveSlaDomain {
            id
            name
        }
        configuredSlaDomain {
            id
            name
        }
        childConnection(filter: []) {
            count
        }
        unprotectedUsersCount
    }
}`,
}

var opO365UserList = operation{
	name: "O365UserList",
	doc: `query O365UserList($first: Int!, $after: String, $orgId: UUID!, $filter: [Filter!], $sortBy: HierarchySortByField, $sortOrder: HierarchySortOrder) {
    o365Users(o365OrgId: $orgId, first: $first, after: $after, filter: $filter, sortBy: $sortBy, sortOrder: $sortOrder) {
        edges {
            node {
                id
                name
                emailAddress
                slaAssignment
                effectiveSlaDomain {
                    id
                    name
                }
            }
        }
        pageInfo {
            endCursor
            hasNextPage
        }
    }
}`,
}
