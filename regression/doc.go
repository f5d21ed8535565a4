// Package regression fits ordinary least squares linear models.
//
// The coefficients solve the normal equations β = (X'X)⁻¹X'y. X'X is
// inverted by Gauss-Jordan elimination after scaling it to unit diagonal,
// so collinearity is detected the same way whatever the units of the
// columns.
//
// # Fitting
//
//	model, err := regression.Fit(x, y, []string{"intercept", "net_radiation"})
//	var fe *regression.FitError
//	if errors.As(err, &fe) {
//	    // errors.Is(err, regression.ErrSingular) for collinear columns
//	}
//
// # Results
//
//	model.Coefficients // one per column
//	model.Fitted       // X·β
//	model.Correlation  // Pearson r between y and the fitted values
//	model.Contributions() // x[i][j]·β[j] per column
//
//	summary := model.Summary()
//	// summary.StdErrors, summary.DurbinWatson, summary.LjungBox, summary.IC
package regression
