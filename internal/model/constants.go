package model

import "time"

const DefaultTimeout = 30 * time.Second

const HeaderContentType = "Content-Type"
const ContentTypeJSON = "application/json"

// PointsPerItem is the fixed accrual rate: every purchased item earns
// this many loyalty points, regardless of price.
const PointsPerItem = 50

type ContextKey string

const KeyContextLogger ContextKey = "logger"

const KeyLoggerError = "error"
