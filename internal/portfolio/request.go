package portfolio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "fundcli/internal/errors"
)

// AnalysisRequest is the validated input of one full analysis run. Fund
// files come either from explicit paths or from a directory scan; the
// benchmark is optional.
type AnalysisRequest struct {
	FundPaths         []string `validate:"required_without=FundsDir,omitempty,dive,required"`
	FundsDir          string   `validate:"required_without=FundPaths"`
	BenchmarkPath     string   `validate:"omitempty"`
	DailyFactorPath   string   `validate:"required"`
	MonthlyFactorPath string   `validate:"required"`
	Universe          string   `validate:"required,oneof=Global US Europe Japan"`
	OutDir            string   `validate:"required"`
}

var validate = validator.New()

// Validate checks the request and reports every violated field in one
// error.
func (r *AnalysisRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewAppValidationError(err.Error())
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		parts[i] = fmt.Sprintf("%s violates %q", fe.Field(), fe.Tag())
	}
	return apperrors.NewAppValidationError(
		fmt.Sprintf("invalid analysis request: %s", strings.Join(parts, "; ")))
}
