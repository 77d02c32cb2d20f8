package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

const namespace = "tictactoe"

const (
	resultAccepted = "accepted"
	resultIgnored  = "ignored"
)

type Metrics struct {
	moves          *prometheus.CounterVec
	jumps          *prometheus.CounterVec
	finishedGames  *prometheus.CounterVec
	activeSessions prometheus.Gauge
}

func New(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		moves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Cell clicks by outcome.",
		}, []string{"result"}),
		jumps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_jumps_total",
			Help:      "History clicks by outcome.",
		}, []string{"result"}),
		finishedGames: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "finished_games_total",
			Help:      "Moves that ended a game, by winner.",
		}, []string{"winner"}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Open game pages.",
		}),
	}
}

func (that *Metrics) MoveApplied(accepted bool) {
	that.moves.WithLabelValues(outcome(accepted)).Inc()
}

func (that *Metrics) Jumped(accepted bool) {
	that.jumps.WithLabelValues(outcome(accepted)).Inc()
}

func (that *Metrics) GameFinished(game *tictactoe.Game) {
	winner := "draw"
	if mark := game.Winner(); mark != tictactoe.EmptyCell {
		winner = string(mark)
	}

	that.finishedGames.WithLabelValues(winner).Inc()
}

func (that *Metrics) SessionStarted() {
	that.activeSessions.Inc()
}

func (that *Metrics) SessionEnded() {
	that.activeSessions.Dec()
}

func outcome(accepted bool) string {
	if accepted {
		return resultAccepted
	}
	return resultIgnored
}
