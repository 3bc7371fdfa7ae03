package companion

var TrimHistory = trimHistory
