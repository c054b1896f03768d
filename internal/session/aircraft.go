package session

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/soar/xgamepad/internal/logger"
	"github.com/soar/xgamepad/internal/xplane"
)

// acfShowCockpitObjectIn2D marks an aircraft whose 2D forward panel view is
// really the 3D cockpit.
const acfShowCockpitObjectIn2D = "P acf/_new_plot_XP3D_cock/0 1"

const da62ICAO = "DA62"

func (s *Session) numEngines() int {
	return min(max(s.store.Int(xplane.AcfNumEngines), 0), xplane.MaxEngines)
}

func (s *Session) isHelicopter() bool {
	if s.store.Int(xplane.AcfCockpitType) == 5 {
		return true
	}
	propType := make([]int, xplane.MaxEngines)
	s.store.Ints(xplane.AcfPropType, propType, 0)
	for _, t := range propType[:s.numEngines()] {
		if t == 3 {
			return true
		}
	}
	return false
}

func (s *Session) isGliderWithSpeedbrakes() bool {
	return s.store.Int(xplane.AcfNumEngines) < 1 && s.store.Int(xplane.AcfSbrkEQ) != 0
}

// throttleDataref is the throttle the dispatcher moves: the beta/reverse
// range for beta props, the jet reverser range for jets with reversers and
// the plain ratio otherwise.
func (s *Session) throttleDataref() string {
	switch {
	case s.store.Int(xplane.AcfHasBeta) != 0:
		return xplane.ThrottleBetaRevRatioAll
	case s.store.Int(xplane.AcfRevthrustEq) != 0:
		return xplane.ThrottleJetRevRatioAll
	default:
		return xplane.ThrottleRatioAll
	}
}

// throttleRatio reads the ToLiss lever input when present.
func (s *Session) throttleRatio(fallback string) float32 {
	if s.store.Has(xplane.AirbusThrottleInput) {
		v := make([]float32, 1)
		s.store.Floats(xplane.AirbusThrottleInput, v, 4)
		return v[0]
	}
	return s.store.Float(fallback)
}

// setToLissThrottle writes both levers and the combined input; index 3 is
// left alone.
func (s *Session) setToLissThrottle(ratio float32) {
	if !s.store.Has(xplane.AirbusThrottleInput) {
		return
	}
	s.store.SetFloats(xplane.AirbusThrottleInput, []float32{ratio, ratio}, 0)
	s.store.SetFloats(xplane.AirbusThrottleInput, []float32{ratio}, 4)
}

// has2DPanel scans the aircraft file. Without a readable file the aircraft
// is assumed to have one.
func (s *Session) has2DPanel() bool {
	path := s.host.AircraftPath()
	if path == "" {
		return true
	}
	f, err := os.Open(path)
	if err != nil {
		logger.Debugf("reading %s: %v", path, err)
		return true
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), acfShowCockpitObjectIn2D) {
			return false
		}
	}
	return true
}

func (s *Session) icao() string {
	b := s.store.Bytes(xplane.AcfICAO)
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// refreshIndicators recounts the prop and mixture levers the indicators
// show for the loaded aircraft.
func (s *Session) refreshIndicators() {
	s.propLevers, s.mixtureLevers = 0, 0
	engines := s.numEngines()
	if !s.settings.ShowIndicators || engines < 1 || s.icao() == da62ICAO {
		return
	}
	helicopter := s.isHelicopter()
	propType := make([]int, xplane.MaxEngines)
	enType := make([]int, xplane.MaxEngines)
	s.store.Ints(xplane.AcfPropType, propType, 0)
	s.store.Ints(xplane.AcfEnType, enType, 0)
	for i := 0; i < engines; i++ {
		if propType[i] >= 1 && propType[i] <= 3 {
			s.propLevers++
		}
		if enType[i] < 2 || (enType[i] == 2 && !helicopter) || enType[i] == 8 {
			s.mixtureLevers++
		}
	}
}

func (s *Session) indicatorsVisible() bool {
	return s.settings.ShowIndicators && (s.numEngines() >= 1 || s.isGliderWithSpeedbrakes())
}
