package pickup

type Op string

const (
	OpApprove  Op = "approve"
	OpReject   Op = "reject"
	OpComplete Op = "complete"
)

type edge struct{ from, to Status }

var edges = map[Op]edge{
	OpApprove:  {StatusPending, StatusApproved},
	OpReject:   {StatusPending, StatusRejected},
	OpComplete: {StatusApproved, StatusCompleted},
}

// Edge returns the required source status and the target status of op.
func Edge(op Op) (from, to Status, ok bool) {
	e, ok := edges[op]
	return e.from, e.to, ok
}

// Allowed reports whether op may run on a request currently in status s.
func Allowed(op Op, s Status) bool {
	e, ok := edges[op]
	return ok && e.from == s
}
