package types

import "errors"

var (
	ErrMissingDownloadDate = errors.New("no download date given. Use --download-date YYYY-MM-DD")
	ErrNoSnapshotSource    = errors.New("no snapshot source configured. Use --source-dir or --s3-bucket")
	ErrMissingTable        = errors.New("snapshot is missing a required table")
	ErrNoSnapshotFiles     = errors.New("no snapshot files found for the download date")
)
