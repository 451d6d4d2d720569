// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stats aggregates forms, submissions and check-ins into a
read-only Report.

# Filters

Filter.FormID limits the report to one form. Filter.Days keeps records
from the last N days. Times are bucketed in Filter.Location.

# Report Contents

  - totals and attendance rate (check-ins per submission)
  - per-form counts with a response bucket: none, few (<5), moderate (<20), many
  - submissions per time slot: 0-9, 9-12, 12-15, 15-18, 18-21, 21-24
  - submissions per weekday, Sunday first
  - answer frequency per question; checkbox answers are joined with ", "
  - interest share: answers to interest questions that pick one of the
    first two options
  - the three most popular schedule answers

Every percentage is 0 when its denominator is 0.
*/
package stats
