package config

const mainHelp = `Usage: decimal-bench [options]

Compares decimal128 arithmetic against arbitrary-precision decimals.

Dataset:
     --size              <int>      amount of operands in every dataset array, power of two (65536)
     --seed              <int>      seed of the pseudo-random operand source (12345)
     --scale             <decimal>  operand magnitude scale (1e39)

Timing:
     --warmup-iterations <int>      amount of warmup iterations (3)
     --warmup-time       <duration> duration of every warmup iteration (5s)
  -i --iterations        <int>      amount of measurement iterations (10)
     --time              <duration> duration of every measurement iteration (10s)

Selection:
  -I --include           <regexp>   benchmarks to run, e.g. 'Add/' or 'dec128-inplace'

Logging:
     --log-level         <string>   debug, info, warn, error (info)
     --log-format        <string>   console or json (console)

Every option may be set by environment variable, e.g. DECIMAL_BENCH_WARMUP_TIME=1s.
`
