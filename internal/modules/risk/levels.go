package risk

// Risk levels for dashboard banding.
const (
	LevelOK    = "ok"
	LevelWatch = "watch"
	LevelAlert = "alert"
)

// Level bands a stored metric value. Return-based metrics are stored as
// fractions and banded on their percent scale; Beta, Sharpe, IR, and
// HHI band on the raw value. Metrics without a banding policy (DV01)
// return the empty string.
func Level(metricName string, value float64) string {
	switch metricName {
	case MetricVaR95:
		pct := value * 100
		switch {
		case pct > -1:
			return LevelOK
		case pct > -2:
			return LevelWatch
		default:
			return LevelAlert
		}
	case MetricExpectedShortfall:
		pct := value * 100
		switch {
		case pct > -1.5:
			return LevelOK
		case pct > -3:
			return LevelWatch
		default:
			return LevelAlert
		}
	case MetricVolatilityAnn:
		pct := value * 100
		switch {
		case pct < 15:
			return LevelOK
		case pct < 25:
			return LevelWatch
		default:
			return LevelAlert
		}
	case MetricMaxDrawdown:
		pct := value * 100
		switch {
		case pct > -10:
			return LevelOK
		case pct > -20:
			return LevelWatch
		default:
			return LevelAlert
		}
	case MetricBeta:
		switch {
		case value >= 0.8 && value <= 1.2:
			return LevelOK
		case value >= 0.6 && value <= 1.5:
			return LevelWatch
		default:
			return LevelAlert
		}
	case MetricTrackingError:
		pct := value * 100
		switch {
		case pct < 5:
			return LevelOK
		case pct < 10:
			return LevelWatch
		default:
			return LevelAlert
		}
	case MetricInformationRatio:
		switch {
		case value > 0.5:
			return LevelOK
		case value > 0:
			return LevelWatch
		default:
			return LevelAlert
		}
	case MetricActiveReturn:
		pct := value * 100
		switch {
		case pct > 2:
			return LevelOK
		case pct > -2:
			return LevelWatch
		default:
			return LevelAlert
		}
	case MetricSharpeRatio:
		switch {
		case value > 1:
			return LevelOK
		case value > 0:
			return LevelWatch
		default:
			return LevelAlert
		}
	case MetricHHISecurity:
		switch {
		case value < 1500:
			return LevelOK
		case value < 2500:
			return LevelWatch
		default:
			return LevelAlert
		}
	case MetricHHISector:
		switch {
		case value < 2500:
			return LevelOK
		case value < 4000:
			return LevelWatch
		default:
			return LevelAlert
		}
	default:
		return ""
	}
}
