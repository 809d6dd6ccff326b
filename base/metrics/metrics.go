/*Package metrics wraps datadog-go to record service metrics
Following are naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
*/
package metrics

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/x-xyz/launchpad/base/env"
	"github.com/x-xyz/launchpad/base/log"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// New creates a metric client with package name as prefix
func New(pkgName string) Service {
	return &Metrics{
		pkgName: pkgName,
		ddTags: []string{
			// using host removes all tags associated with host
			// ref: https://docs.datadoghq.com/developers/dogstatsd/data_types/#host-tag-key
			"host:",
			"pod:" + env.PodName(),
			"env:" + viper.GetString("env"),
			"app:" + env.AppName(),
		},
	}
}

// Metrics prefixes keys by package and appends common tags before handing them to statsd
type Metrics struct {
	pkgName string
	ddTags  []string
}

func (mt *Metrics) key(key string) string {
	return mt.pkgName + "." + key
}

func (mt *Metrics) tags(tags []string) []string {
	res := make([]string, 0, len(mt.ddTags)+len(tags)/2)
	res = append(res, mt.ddTags...)
	return append(res, parseTag(tags)...)
}

func (mt *Metrics) recoverBump(fn string, key string, tags []string) {
	if err := recover(); err != nil {
		log.Log().WithFields(log.Fields{
			"err":  err,
			"func": fn,
			"key":  mt.key(key) + "#" + strings.Join(tags, "#"),
		}).Error("metric bump panic")
	}
}

// BumpAvg bumps the average for the given key.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	defer mt.recoverBump("BumpAvg", key, tags)
	if err := client().Gauge(mt.key(key), val, mt.tags(tags), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val}).Warn("Gauge failed")
	}
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer mt.recoverBump("BumpSum", key, tags)
	if err := client().Count(mt.key(key), int64(val), mt.tags(tags), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val}).Warn("Count failed")
	}
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer mt.recoverBump("BumpHistogram", key, tags)
	if err := client().Histogram(mt.key(key), val, mt.tags(tags), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val}).Warn("Histogram failed")
	}
}

// BumpTime starts a timer, call End() on the returned value to record it:
//
//     defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		start: time.Now(),
		key:   mt.key(key),
		tags:  mt.tags(tags),
	}
}

type timeTracker struct {
	start time.Time
	key   string
	tags  []string
}

func (t *timeTracker) End() {
	dur := float64(time.Since(t.start)) / float64(time.Millisecond)
	if err := client().TimeInMilliseconds(t.key, dur, t.tags, ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": t.key, "val": dur}).Warn("TimeInMilliseconds failed")
	}
}

func parseTag(tags []string) []string {
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}
