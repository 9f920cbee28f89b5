package scene

// Observer receives registry lifecycle notifications. Collaborators (zone
// lists, rosters, autosave) subscribe here instead of being wired to any
// particular event-loop framework.
type Observer interface {
	ObjectPlaced(*Object)
	ObjectRemoved(*Object)
	ZoneCreated(*Zone)
	ZoneUpdated(*Zone)
	ZoneRemoved(*Zone)
	ZoneRedrawFinished(*Zone)
}

// ObserverFuncs adapts plain functions to Observer; nil fields are ignored.
type ObserverFuncs struct {
	OnObjectPlaced       func(*Object)
	OnObjectRemoved      func(*Object)
	OnZoneCreated        func(*Zone)
	OnZoneUpdated        func(*Zone)
	OnZoneRemoved        func(*Zone)
	OnZoneRedrawFinished func(*Zone)
}

func (f *ObserverFuncs) ObjectPlaced(o *Object) {
	if f.OnObjectPlaced != nil {
		f.OnObjectPlaced(o)
	}
}

func (f *ObserverFuncs) ObjectRemoved(o *Object) {
	if f.OnObjectRemoved != nil {
		f.OnObjectRemoved(o)
	}
}

func (f *ObserverFuncs) ZoneCreated(z *Zone) {
	if f.OnZoneCreated != nil {
		f.OnZoneCreated(z)
	}
}

func (f *ObserverFuncs) ZoneUpdated(z *Zone) {
	if f.OnZoneUpdated != nil {
		f.OnZoneUpdated(z)
	}
}

func (f *ObserverFuncs) ZoneRemoved(z *Zone) {
	if f.OnZoneRemoved != nil {
		f.OnZoneRemoved(z)
	}
}

func (f *ObserverFuncs) ZoneRedrawFinished(z *Zone) {
	if f.OnZoneRedrawFinished != nil {
		f.OnZoneRedrawFinished(z)
	}
}
