package handlers

// BroadcastForTest exposes the event fan-out to the external test package
var BroadcastForTest = broadcastVehicleEvent
