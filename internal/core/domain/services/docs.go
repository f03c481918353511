// Package services contains domain services of the tailoring service: logic that
// spans several aggregates and does not belong to any single one.
//
// TailorAllocator chooses which free tailor takes a new order.
package services
