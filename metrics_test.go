package componentbuilder

import (
	"errors"
	"testing"
	"time"

	"github.com/foomo/componentbuilder/rules"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, errMetrics := NewMetrics(reg)
	require.NoError(t, errMetrics)

	b := New([]rules.Rule{
		{When: rules.Tag("script"), Ignore: true},
		{When: rules.Tag("blink"), Use: "never"},
		{When: func(n *html.Node) (bool, error) {
			if n.Data == "marquee" {
				return false, errors.New("no marquee")
			}
			return false, nil
		}},
	}, WithMetrics(m))

	_, errBuild := b.Build(`<ul><li>a</li><li>b<script></script></li></ul>`)
	require.NoError(t, errBuild)
	_, errBuild = b.Build(`<div><marquee>x</marquee></div>`)
	require.Error(t, errBuild)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.elements.WithLabelValues("ul")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.elements.WithLabelValues("li")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.dropped))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.buildErrors))
	assert.Equal(t, 1, testutil.CollectAndCount(m.buildDuration))

	// registering twice fails
	_, errAgain := NewMetrics(reg)
	assert.Error(t, errAgain)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.countElement("div")
		m.countDropped()
		m.observeBuild(time.Now(), nil)
	})
}
