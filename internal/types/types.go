package types

// Status tells a fully converged root apart from one confirmed after the
// iteration budget ran out.
type Status string

const (
	StatusConverged     Status = "converged"
	StatusMaxIterations Status = "max-iterations"
)

// RootRecord describes one confirmed root: the estimate, the last bracket
// around it, the undeflated residual and how much of the iteration budget
// each solver phase consumed.
type RootRecord struct {
	Value               float64 `json:"value"`
	LowerBound          float64 `json:"lower_bound"`
	UpperBound          float64 `json:"upper_bound"`
	FunctionAtRoot      float64 `json:"function_at_root"`
	SecantIterations    int     `json:"secant_iterations"`
	BisectionIterations int     `json:"bisection_iterations"`
	ErrorEstimate       float64 `json:"error_estimate"`
	Confirmed           bool    `json:"confirmed"`
	Status              Status  `json:"status"`
}

// Iterations is the total budget the record consumed across both phases.
func (r RootRecord) Iterations() int { return r.SecantIterations + r.BisectionIterations }

// Degraded reports whether the root was confirmed without meeting its tolerance.
func (r RootRecord) Degraded() bool { return r.Status == StatusMaxIterations }
