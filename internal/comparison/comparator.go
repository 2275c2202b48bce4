package comparison

import (
	stderrors "errors"
	"fmt"
	"math"
	"sort"

	"burnoutlens/domain/survey"
	apperrors "burnoutlens/internal/errors"

	moremath "github.com/aclements/go-moremath/stats"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Method selects how the Mann-Whitney p-value is computed.
type Method string

const (
	// MethodAuto uses the exact U distribution for small samples and a tie-corrected
	// normal approximation otherwise.
	MethodAuto Method = "auto"
	// MethodAsymptotic always uses the tie-corrected normal approximation with
	// continuity correction.
	MethodAsymptotic Method = "asymptotic"
)

// DefaultAlpha is the significance threshold used when none is configured.
const DefaultAlpha = 0.05

// ParseMethod validates a method name. The empty string selects MethodAuto.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "", MethodAuto:
		return MethodAuto, nil
	case MethodAsymptotic:
		return MethodAsymptotic, nil
	}
	return "", apperrors.InvalidInput(fmt.Sprintf("unknown comparison method %q (want auto or asymptotic)", s))
}

// Comparison is the outcome of contrasting the filtered group (A) with its complement (B).
type Comparison struct {
	MedianA     float64 `json:"median_a"`
	MedianB     float64 `json:"median_b"`
	PValue      float64 `json:"p_value"`
	Significant bool    `json:"significant"`
	U           float64 `json:"u"`
	N1          int     `json:"n1"`
	N2          int     `json:"n2"`
	Method      Method  `json:"method"`
}

// PText renders the p-value for display.
func (c Comparison) PText() string {
	return FormatPValue(c.PValue)
}

// Comparator runs two-sided Mann-Whitney U tests between two samples.
type Comparator struct {
	Alpha  float64
	Method Method
}

// NewComparator creates a comparator. Non-positive alpha falls back to DefaultAlpha.
func NewComparator(alpha float64, method Method) *Comparator {
	if alpha <= 0 || alpha >= 1 {
		alpha = DefaultAlpha
	}
	if method == "" {
		method = MethodAuto
	}
	return &Comparator{Alpha: alpha, Method: method}
}

// Compare removes nulls from both samples, computes their medians and the two-sided
// rank-sum p-value. It returns a COMPARISON_UNDEFINED error when either sample is
// empty or every pooled value is identical.
func (c *Comparator) Compare(a, b []survey.Value) (Comparison, error) {
	x1 := present(a)
	x2 := present(b)

	if len(x1) == 0 || len(x2) == 0 {
		return Comparison{}, apperrors.ComparisonUndefined(
			fmt.Sprintf("one group has no values (filtered: %d, complement: %d)", len(x1), len(x2)))
	}
	if constant(x1, x2) {
		return Comparison{}, apperrors.ComparisonUndefined("all values are identical across both groups")
	}

	medA, err := stats.Median(x1)
	if err != nil {
		return Comparison{}, apperrors.Wrap(err, "median of filtered group")
	}
	medB, err := stats.Median(x2)
	if err != nil {
		return Comparison{}, apperrors.Wrap(err, "median of complement")
	}

	out := Comparison{MedianA: medA, MedianB: medB, N1: len(x1), N2: len(x2), Method: c.method()}

	switch out.Method {
	case MethodAsymptotic:
		out.U, out.PValue = asymptoticU(x1, x2)
	default:
		res, err := moremath.MannWhitneyUTest(x1, x2, moremath.LocationDiffers)
		if err != nil {
			if stderrors.Is(err, moremath.ErrSampleSize) || stderrors.Is(err, moremath.ErrSamplesEqual) {
				return Comparison{}, apperrors.WithCode(apperrors.CodeComparisonUndefined, apperrors.Wrap(err, "rank-sum test cannot proceed"))
			}
			return Comparison{}, apperrors.Wrap(err, "rank-sum test failed")
		}
		out.U, out.PValue = res.U, res.P
	}

	out.PValue = math.Min(1, math.Max(0, out.PValue))
	out.Significant = out.PValue < c.alpha()
	return out, nil
}

func (c *Comparator) alpha() float64 {
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return DefaultAlpha
	}
	return c.Alpha
}

func (c *Comparator) method() Method {
	if c.Method == "" {
		return MethodAuto
	}
	return c.Method
}

// FormatPValue reports values below 0.001 as "< 0.001" and others with four decimals.
func FormatPValue(p float64) string {
	if p < 0.001 {
		return "< 0.001"
	}
	return fmt.Sprintf("%.4f", p)
}

// PClause renders "p < 0.001" or "p = 0.0123".
func PClause(p float64) string {
	if p < 0.001 {
		return "p < 0.001"
	}
	return "p = " + FormatPValue(p)
}

func present(vals []survey.Value) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if v.Valid {
			out = append(out, v.V)
		}
	}
	return out
}

func constant(x1, x2 []float64) bool {
	first := x1[0]
	for _, x := range x1 {
		if x != first {
			return false
		}
	}
	for _, x := range x2 {
		if x != first {
			return false
		}
	}
	return true
}

// asymptoticU ranks the pooled sample with average ranks for ties and returns U for
// x1 and the two-sided p-value of the tie-corrected normal approximation.
func asymptoticU(x1, x2 []float64) (float64, float64) {
	n1, n2 := float64(len(x1)), float64(len(x2))
	n := n1 + n2

	type obs struct {
		v     float64
		first bool
	}
	pooled := make([]obs, 0, len(x1)+len(x2))
	for _, v := range x1 {
		pooled = append(pooled, obs{v, true})
	}
	for _, v := range x2 {
		pooled = append(pooled, obs{v, false})
	}
	sort.Slice(pooled, func(i, j int) bool { return pooled[i].v < pooled[j].v })

	var r1, tieSum float64
	for i := 0; i < len(pooled); {
		j := i
		for j < len(pooled) && pooled[j].v == pooled[i].v {
			j++
		}
		rank := float64(i+j+1) / 2
		t := float64(j - i)
		tieSum += t*t*t - t
		for k := i; k < j; k++ {
			if pooled[k].first {
				r1 += rank
			}
		}
		i = j
	}

	u := r1 - n1*(n1+1)/2
	mu := n1 * n2 / 2
	sigma := math.Sqrt(n1 * n2 / 12 * ((n + 1) - tieSum/(n*(n-1))))
	if sigma == 0 {
		return u, 1
	}
	z := math.Max(0, math.Abs(u-mu)-0.5) / sigma
	return u, math.Min(1, 2*distuv.UnitNormal.Survival(z))
}
