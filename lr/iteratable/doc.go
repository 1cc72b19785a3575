/*
Package iteratable implements iteratable container data structures.

Set is a special purpose set type, suitable mainly for implementing algorithms
around scanners, parsers, etc. These kinds of algorihms are often more straightforward
to describe as set constructions and operations.

Sets remember the order of insertion and may grow while being iterated over.
This makes them a natural fit for fixed-point computations like LR closures:

    C.IterateOnce()
    for C.Next() {
        x := C.Item()
        C.Add(…)      // new elements will be visited by this very loop
    }

Unusually, all set operations are destructive!

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package iteratable
