package external

import (
	"os"
	"runtime"

	"github.com/grafana/pyroscope-go"
	log "github.com/sirupsen/logrus"

	"worldclock/config"
)

// InitPyroscope starts continuous profiling when a server address is
// configured. The returned profiler is nil when profiling is off; callers
// should Stop it on shutdown.
func InitPyroscope() *pyroscope.Profiler {
	settings := config.Config.Pyroscope
	if settings.ServerAddress == "" {
		return nil
	}
	log.Infof("Pyroscope starting")

	runtime.SetMutexProfileFraction(settings.MutexProfileFraction)
	runtime.SetBlockProfileRate(settings.BlockProfileRate)

	pyroscopeConfig := pyroscope.Config{
		ApplicationName: settings.ApplicationName,
		ServerAddress:   settings.ServerAddress,
		Tags:            map[string]string{"hostname": os.Getenv("HOSTNAME")},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,

			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileMutexDuration,
			pyroscope.ProfileBlockCount,
			pyroscope.ProfileBlockDuration,
		},
	}

	if settings.Logger {
		pyroscopeConfig.Logger = pyroscope.StandardLogger
	}

	if settings.ApiKey != "" {
		pyroscopeConfig.HTTPHeaders = map[string]string{
			"Authorization": "Bearer " + settings.ApiKey,
		}
	} else if settings.BasicAuthUser != "" {
		pyroscopeConfig.BasicAuthUser = settings.BasicAuthUser
		pyroscopeConfig.BasicAuthPassword = settings.BasicAuthPassword
	}

	profiler, err := pyroscope.Start(pyroscopeConfig)
	if err != nil {
		log.Errorf("Pyroscope Init Failed: %s", err)
		return nil
	}
	return profiler
}
