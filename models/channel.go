package models

// DestinationChannelCount is the number of statically configured destination channels
const DestinationChannelCount = 3

// ChannelDirectoryEntry maps a configured destination channel to its display name
type ChannelDirectoryEntry struct {
	ID   string
	Name string
}
