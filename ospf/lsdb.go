package ospf

// LSDBKey identifies an LSA within an area's link state database.
type LSDBKey struct {
	Type              LSAType
	LinkStateID       string
	AdvertisingRouter RouterID
}

type lsdb map[LSDBKey]LSA

// fresher reports whether incoming should replace stored, which must share
// its key. The rules are an ordered decision table:
//
//  1. a strictly higher sequence number wins;
//  2. at equal sequence numbers, a non-MaxAge LSA replaces a MaxAge one;
//  3. at equal sequence numbers, an LSA arriving at MaxAge replaces a
//     younger stored copy (an explicit flush of the stored LSA);
//  4. otherwise a strictly lower age wins.
//
// Anything else keeps the stored LSA. In particular, two LSAs with equal
// sequence numbers and equal ages never replace each other even if their
// contents differ: the database favors stability over guessing which copy
// is authoritative.
func fresher(incoming, stored *LSAHeader) bool {
	if incoming.SequenceNumber != stored.SequenceNumber {
		return incoming.SequenceNumber > stored.SequenceNumber
	}

	if stored.Age == MaxAge && incoming.Age != MaxAge {
		return true
	}

	if incoming.Age == MaxAge && stored.Age != MaxAge {
		return true
	}

	return incoming.Age < stored.Age
}
