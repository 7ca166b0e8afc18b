// Package tasks builds playback queues from search selections.
//
// [QueueBuilder.Build] turns a chosen track into a full queue: the seed track
// first, followed by its radio continuation with disliked tracks removed. A
// failed radio fetch degrades the queue to the seed alone rather than failing
// playback, and a failed dislike lookup degrades to the unfiltered
// continuation.
package tasks
