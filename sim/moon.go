package sim

// LinkBudget is the light-time budget of the Earth-Moon surface link at one
// orbital distance.
type LinkBudget struct {
	SurfaceKm float64
	OneWayMs  float64
	RTTMs     float64
}

// MoonScenarioReport summarizes the Earth-Moon link envelope and what it
// does to a TCP handshake: the client considers the connection open after
// one RTT (SYN out, SYN-ACK back), the server only after 1.5 RTT (the ACK
// still has to arrive).
type MoonScenarioReport struct {
	Perigee LinkBudget
	Mean    LinkBudget
	Apogee  LinkBudget

	ClientReadyMinMs float64
	ClientReadyMaxMs float64
	ServerReadyMinMs float64
	ServerReadyMaxMs float64
}

// MoonScenario computes the link budget at perigee, mean distance, and
// apogee, plus the TCP handshake window across the envelope.
func (m *OrbitalLinkModel) MoonScenario() (MoonScenarioReport, error) {
	budget := func(centerKm float64) (LinkBudget, error) {
		surface := m.cfg.LunarSurfaceDistanceKm(centerKm)
		lt, err := m.LightTimeOver(surface)
		if err != nil {
			return LinkBudget{}, err
		}
		return LinkBudget{
			SurfaceKm: surface,
			OneWayMs:  lt.OneWayS * 1000.0,
			RTTMs:     lt.RoundTripS * 1000.0,
		}, nil
	}

	perigee, err := budget(m.cfg.LunarPerigeeKm)
	if err != nil {
		return MoonScenarioReport{}, err
	}
	mean, err := budget((m.cfg.LunarPerigeeKm + m.cfg.LunarApogeeKm) / 2.0)
	if err != nil {
		return MoonScenarioReport{}, err
	}
	apogee, err := budget(m.cfg.LunarApogeeKm)
	if err != nil {
		return MoonScenarioReport{}, err
	}

	return MoonScenarioReport{
		Perigee:          perigee,
		Mean:             mean,
		Apogee:           apogee,
		ClientReadyMinMs: perigee.RTTMs,
		ClientReadyMaxMs: apogee.RTTMs,
		ServerReadyMinMs: perigee.RTTMs * 1.5,
		ServerReadyMaxMs: apogee.RTTMs * 1.5,
	}, nil
}
